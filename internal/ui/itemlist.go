package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mercari/internal/images"
	"mercari/internal/item"
	"mercari/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// blockHeight is the number of lines one rendered item block occupies,
// including the blank separator line.
const blockHeight = 4

// ItemSource retrieves the current item collection.
type ItemSource interface {
	FetchItems(ctx context.Context) (item.List, error)
}

// ImageLoader loads an image source, failing the way an <img> load error would.
type ImageLoader interface {
	Load(ctx context.Context, src string) (images.Info, error)
}

// ItemListConfig is the construction-time configuration of an ItemListView.
type ItemListConfig struct {
	Source         ItemSource
	Images         ImageLoader // nil: images are never loaded and keep their primary source
	ImageHost      string      // base for <host>/image/<image_name>
	PlaceholderURL string      // fallback source after an image load error
	Debug          bool        // log successful fetches
}

// Block is one rendered item: an image plus its name and category, keyed by item ID.
type Block struct {
	Key      string
	ImageSrc string
	ImageAlt string
	Name     string
	Category string
}

// imageState tracks one block's image across re-renders.
type imageState struct {
	primary  string
	src      string
	fellBack bool // src swapped to the placeholder; never swapped again
	broken   bool // the placeholder failed too
	info     *images.Info
}

// ItemListView fetches items when its reload input rises and renders them.
//
// Fetch results are applied only when they belong to this instance, are newer
// than the last applied result, and arrive before Close.
type ItemListView struct {
	cfg ItemListConfig
	id  string

	items  []item.Item
	images map[int64]*imageState

	reload          bool
	onLoadCompleted func()

	started  bool
	closed   bool
	issued   uint64 // generation of the most recent fetch
	applied  uint64 // generation of the most recent applied result
	inFlight int

	ctx    context.Context
	cancel context.CancelFunc

	cursor int
	offset int
	width  int
	height int
}

// Ensure ItemListView implements View.
var _ View = (*ItemListView)(nil)

// NewItemListView creates a view with its initial inputs. Nothing is fetched
// until Init.
func NewItemListView(cfg ItemListConfig, reload bool, onLoadCompleted func()) *ItemListView {
	ctx, cancel := context.WithCancel(context.Background())
	return &ItemListView{
		cfg:             cfg,
		id:              uuid.NewString(),
		images:          make(map[int64]*imageState),
		reload:          reload,
		onLoadCompleted: onLoadCompleted,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Init implements View. It issues the initial fetch when reload is true.
func (v *ItemListView) Init() tea.Cmd {
	if v.started || v.closed {
		return nil
	}
	v.started = true
	if v.reload {
		return v.fetch()
	}
	return nil
}

// SetProps updates the inputs from the parent. A fetch is issued only on a
// false -> true transition of reload; the callback is stored but never
// triggers one.
func (v *ItemListView) SetProps(reload bool, onLoadCompleted func()) tea.Cmd {
	rising := reload && !v.reload
	v.reload = reload
	v.onLoadCompleted = onLoadCompleted
	if rising && v.started && !v.closed {
		return v.fetch()
	}
	return nil
}

// Close discards the view: in-flight fetches and image loads are canceled and
// any result that still arrives is dropped.
func (v *ItemListView) Close() {
	v.closed = true
	v.cancel()
}

// Items returns the currently rendered sequence.
func (v *ItemListView) Items() []item.Item {
	return v.items
}

// Loading reports whether any fetch is outstanding.
func (v *ItemListView) Loading() bool {
	return v.inFlight > 0
}

// Cursor returns the index of the selected block.
func (v *ItemListView) Cursor() int {
	return v.cursor
}

func (v *ItemListView) fetch() tea.Cmd {
	v.issued++
	v.inFlight++
	return fetchItemsCmd(v.ctx, v.cfg.Source, v.id, v.issued)
}

// Update implements View.
func (v *ItemListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsFetchedMsg:
		if msg.viewID != v.id {
			return v, nil
		}
		return v, v.handleFetched(msg)
	case imageLoadedMsg:
		if msg.viewID == v.id && !v.closed {
			if st := v.images[msg.itemID]; st != nil && st.src == msg.src {
				info := msg.info
				st.info = &info
			}
		}
		return v, nil
	case imageErrorMsg:
		if msg.viewID == v.id && !v.closed {
			return v, v.handleImageError(msg)
		}
		return v, nil
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height - 4 // header and hint lines
		v.clampOffset()
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			v.moveCursor(1)
		case "k", "up":
			v.moveCursor(-1)
		case "g", "home":
			v.moveCursor(-len(v.items))
		case "G", "end":
			v.moveCursor(len(v.items))
		}
		return v, nil
	}
	return v, nil
}

func (v *ItemListView) handleFetched(msg itemsFetchedMsg) tea.Cmd {
	v.inFlight--
	if v.closed {
		return nil
	}
	if msg.err != nil {
		log.Printf("GET error: %v", msg.err)
		return nil
	}
	if msg.gen <= v.applied {
		if v.cfg.Debug {
			log.Printf("GET success: dropping response %d, %d already applied", msg.gen, v.applied)
		}
		return nil
	}
	if v.cfg.Debug {
		log.Printf("GET success: %d items", len(msg.list.Items))
	}

	v.applied = msg.gen
	v.items = append([]item.Item(nil), msg.list.Items...)
	cmds := v.reconcileImages()
	if v.cursor >= len(v.items) {
		v.cursor = max(len(v.items)-1, 0)
	}
	v.clampOffset()

	if v.onLoadCompleted != nil {
		v.onLoadCompleted()
	}
	return tea.Batch(cmds...)
}

// reconcileImages rebuilds image state keyed by item ID. A block whose item
// keeps the same primary source keeps its state (including a fallback).
func (v *ItemListView) reconcileImages() []tea.Cmd {
	next := make(map[int64]*imageState, len(v.items))
	var cmds []tea.Cmd
	for _, it := range v.items {
		if _, seen := next[it.ID]; seen {
			continue
		}
		primary := images.URL(v.cfg.ImageHost, it.ImageName)
		if st, ok := v.images[it.ID]; ok && st.primary == primary {
			next[it.ID] = st
			continue
		}
		next[it.ID] = &imageState{primary: primary, src: primary}
		if v.cfg.Images != nil {
			cmds = append(cmds, loadImageCmd(v.ctx, v.cfg.Images, v.id, it.ID, primary))
		}
	}
	v.images = next
	return cmds
}

// handleImageError swaps a block's source to the placeholder the first time
// its image fails. Later errors leave the source alone.
func (v *ItemListView) handleImageError(msg imageErrorMsg) tea.Cmd {
	st := v.images[msg.itemID]
	if st == nil || st.src != msg.src {
		return nil
	}
	if st.fellBack {
		st.broken = true
		return nil
	}
	st.fellBack = true
	st.src = v.cfg.PlaceholderURL
	st.info = nil
	if v.cfg.Images != nil {
		return loadImageCmd(v.ctx, v.cfg.Images, v.id, msg.itemID, st.src)
	}
	return nil
}

// Blocks returns the rendered blocks in sequence order.
func (v *ItemListView) Blocks() []Block {
	blocks := make([]Block, len(v.items))
	for i, it := range v.items {
		src := images.URL(v.cfg.ImageHost, it.ImageName)
		if st := v.images[it.ID]; st != nil {
			src = st.src
		}
		blocks[i] = Block{
			Key:      it.Key(),
			ImageSrc: src,
			ImageAlt: "Image for " + it.Name,
			Name:     it.Name,
			Category: it.Category,
		}
	}
	return blocks
}

func (v *ItemListView) moveCursor(delta int) {
	if len(v.items) == 0 {
		v.cursor = 0
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(v.items)-1)
	v.clampOffset()
}

// visibleBlocks is how many blocks fit; 0 height means unbounded.
func (v *ItemListView) visibleBlocks() int {
	if v.height <= 0 {
		return len(v.items)
	}
	return max(v.height/blockHeight, 1)
}

func (v *ItemListView) clampOffset() {
	n := v.visibleBlocks()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+n {
		v.offset = v.cursor - n + 1
	}
	v.offset = min(v.offset, max(len(v.items)-n, 0))
	v.offset = max(v.offset, 0)
}

// View implements View.
func (v *ItemListView) View() string {
	blocks := v.Blocks()
	if len(blocks) == 0 {
		return Styles.Empty.Render("No items")
	}

	var b strings.Builder
	end := min(v.offset+v.visibleBlocks(), len(blocks))
	for i := v.offset; i < end; i++ {
		if i > v.offset {
			b.WriteString("\n")
		}
		b.WriteString(v.renderBlock(i, blocks[i]))
	}
	return b.String()
}

func (v *ItemListView) renderBlock(i int, blk Block) string {
	marker := "  "
	name := Styles.Normal.Render(v.fit("Name: " + blk.Name))
	if i == v.cursor {
		marker = Styles.Selected.Render("▸ ")
		name = Styles.Selected.Render(v.fit("Name: " + blk.Name))
	}

	img := Styles.Image.Render(fmt.Sprintf("[%s] %s", blk.ImageAlt, blk.ImageSrc))
	if st := v.images[v.items[i].ID]; st != nil {
		switch {
		case st.broken:
			img += " " + Styles.ImageBad.Render("(unavailable)")
		case st.info != nil:
			img += " " + Styles.ImageOK.Render("("+st.info.String()+")")
		}
	}

	var b strings.Builder
	b.WriteString(marker + img + "\n")
	b.WriteString("  " + name + "\n")
	b.WriteString("  " + Styles.Normal.Render(v.fit("Category: "+blk.Category)) + "\n")
	return b.String()
}

// fit truncates block text to the indented width. The image line is never
// truncated so its source stays readable.
func (v *ItemListView) fit(s string) string {
	if v.width <= 2 {
		return s
	}
	return textutil.Truncate(s, v.width-2)
}
