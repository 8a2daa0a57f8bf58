// Package ui is the Bubble Tea front end of the storefront client.
//
// Core pieces:
//   - View: Elm-style unit of composition (Init/Update/View)
//   - ItemListView: fetches the item collection when its reload input rises
//     and renders one keyed block per item
//   - AppModel: parent that owns the reload flag and the load-completed callback
//   - KeyHandler: spacemacs-style leader key dispatch (SPC r, SPC q)
package ui
