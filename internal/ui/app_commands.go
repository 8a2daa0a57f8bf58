package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchItemsCmd returns a command that runs one fetch against src.
// The result comes back as itemsFetchedMsg on the event loop.
func fetchItemsCmd(ctx context.Context, src ItemSource, viewID string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		list, err := src.FetchItems(ctx)
		return itemsFetchedMsg{viewID: viewID, gen: gen, list: list, err: err}
	}
}

// loadImageCmd returns a command that loads one image source for an item block.
func loadImageCmd(ctx context.Context, l ImageLoader, viewID string, itemID int64, src string) tea.Cmd {
	return func() tea.Msg {
		info, err := l.Load(ctx, src)
		if err != nil {
			return imageErrorMsg{viewID: viewID, itemID: itemID, src: src, err: err}
		}
		return imageLoadedMsg{viewID: viewID, itemID: itemID, src: src, info: info}
	}
}
