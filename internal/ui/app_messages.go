package ui

import (
	"mercari/internal/images"
	"mercari/internal/item"
)

// RefreshMsg asks the app to raise the reload input (r / SPC r).
type RefreshMsg struct{}

// itemsFetchedMsg is the resolution of one fetch issued by an ItemListView.
// viewID and gen tie it to the view instance and request that issued it.
type itemsFetchedMsg struct {
	viewID string
	gen    uint64
	list   item.List
	err    error
}

// imageLoadedMsg reports that src was fetched and decoded for an item block.
type imageLoadedMsg struct {
	viewID string
	itemID int64
	src    string
	info   images.Info
}

// imageErrorMsg is the image-load-error event for an item block.
type imageErrorMsg struct {
	viewID string
	itemID int64
	src    string
	err    error
}
