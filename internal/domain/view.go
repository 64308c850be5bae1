package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a navigation action is not allowed
// from the current view.
var ErrInvalidTransition = errors.New("invalid view transition")

// View is the page the storefront is showing.
type View int

const (
	ViewHome View = iota
	ViewCategory
	ViewSearch
	ViewProduct
)

var viewNames = [...]string{
	ViewHome:     "home",
	ViewCategory: "category",
	ViewSearch:   "search",
	ViewProduct:  "product",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Action is a navigation event sent by the UI.
type Action string

const (
	ActionSelectCategory Action = "select_category"
	ActionSubmitQuery    Action = "submit_query"
	ActionOpenProduct    Action = "open_product"
	ActionGoHome         Action = "go_home"
)

// ViewState is the navigator's current position.
type ViewState struct {
	View      View     `json:"view"`
	Category  Category `json:"category,omitempty"`
	Query     string   `json:"query,omitempty"`
	ProductID int      `json:"product_id,omitempty"`
}

// Navigator is the explicit view state machine:
//
//	Home, Category           -> Category  (SelectCategory)
//	Home, Category, Search,
//	Product                  -> Search    (SubmitQuery)
//	any                      -> Product   (OpenProduct)
//	any                      -> Home      (GoHome)
//
// It is not safe for concurrent use.
type Navigator struct {
	state ViewState
}

// NewNavigator starts at the home view.
func NewNavigator() *Navigator {
	return &Navigator{state: ViewState{View: ViewHome}}
}

// State returns the current view state.
func (n *Navigator) State() ViewState {
	return n.state
}

// SelectCategory moves to the category listing for c.
func (n *Navigator) SelectCategory(c Category) error {
	if n.state.View != ViewHome && n.state.View != ViewCategory {
		return fmt.Errorf("select category from %s: %w", n.state.View, ErrInvalidTransition)
	}
	n.state = ViewState{View: ViewCategory, Category: c}
	return nil
}

// SubmitQuery moves to the search results for q. The current category is
// kept as search context.
func (n *Navigator) SubmitQuery(q string) error {
	n.state = ViewState{View: ViewSearch, Category: n.state.Category, Query: q}
	return nil
}

// OpenProduct moves to the product detail page.
func (n *Navigator) OpenProduct(id int) error {
	n.state = ViewState{
		View:      ViewProduct,
		Category:  n.state.Category,
		Query:     n.state.Query,
		ProductID: id,
	}
	return nil
}

// GoHome returns to the landing page.
func (n *Navigator) GoHome() {
	n.state = ViewState{View: ViewHome}
}
