package models

import (
	"context"
	"strconv"
	"sync"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Field Controller
//
// Owns one editor's interaction with a content-type link field: the chosen
// content type, the market, the current selection and the visible
// suggestion list. It drives the suggestion gateway and keeps the host field
// store in step with what is on screen.
//
// Commit rule: whenever an action leaves both a content type and a selection
// in place, the full FieldValue is written to the host store. Nothing else
// writes to the store.
//
// Search ordering: every search gets a sequence number. A response is only
// applied if no later search, selection, reset or type change has happened
// since it was issued. The mutex is never held across the network call.
// ============================================================================

// FieldStore is the host's storage for the field value.
type FieldStore interface {
	GetValue() (*FieldValue, error)
	SetValue(value FieldValue) error
}

// Viewport receives the height the widget wants on screen.
// Implementations must not call back into the controller.
type Viewport interface {
	UpdateHeight(px int)
}

// Height model, in pixels.
const (
	BaseFieldHeight        = 200
	SearchingExtraHeight   = 200
	DefaultSelectionHeight = 50
)

// SelectionMeasure reports the height of the "currently selected" region.
// selected is nil when nothing is selected.
type SelectionMeasure func(selected *Suggestion) int

func defaultSelectionMeasure(*Suggestion) int {
	return DefaultSelectionHeight
}

// FieldState is a point-in-time copy of a controller's session state.
type FieldState struct {
	ContentType  ContentType  `json:"content_type"`
	Country      CountryCode  `json:"country"`
	Selected     *Suggestion  `json:"selected,omitempty"`
	Suggestions  []Suggestion `json:"suggestions"`
	Query        string       `json:"query"`
	Searching    bool         `json:"searching"`
	SearchFailed bool         `json:"search_failed"`
	Value        *FieldValue  `json:"value,omitempty"`
	CommitError  string       `json:"commit_error,omitempty"`
	Height       int          `json:"height"`
}

// FieldController is safe for concurrent use.
type FieldController struct {
	fetcher  SuggestionFetcher
	store    FieldStore
	viewport Viewport
	measure  SelectionMeasure

	mu           sync.Mutex
	contentType  ContentType
	country      CountryCode
	selected     *Suggestion
	suggestions  []Suggestion
	query        string
	searching    bool
	searchFailed bool
	value        *FieldValue
	commitErr    error
	height       int
	searchSeq    uint64
}

// FieldControllerOption customizes a controller at construction.
type FieldControllerOption func(*FieldController)

// WithSelectionMeasure replaces the fixed selection-region height.
func WithSelectionMeasure(measure SelectionMeasure) FieldControllerOption {
	return func(c *FieldController) {
		if measure != nil {
			c.measure = measure
		}
	}
}

// WithCountry sets the starting market.
func WithCountry(cc CountryCode) FieldControllerOption {
	return func(c *FieldController) {
		if cc.IsValid() {
			c.country = cc
		}
	}
}

// NewFieldController wires a controller to its collaborators.
// Call Mount before handing it to the editor.
func NewFieldController(fetcher SuggestionFetcher, store FieldStore, viewport Viewport, opts ...FieldControllerOption) *FieldController {
	c := &FieldController{
		fetcher:     fetcher,
		store:       store,
		viewport:    viewport,
		measure:     defaultSelectionMeasure,
		country:     DefaultCountryCode,
		suggestions: []Suggestion{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount seeds the session from the host store and reports the initial
// height. It never writes to the store.
func (c *FieldController) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.store.GetValue()
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to read stored field value"), "mounting field with empty value")
		stored = nil
	}

	c.value = stored
	c.contentType, c.selected = stored.Hydrate()
	c.reportHeightLocked()
}

// ChangeContentType switches the lookup type. The selection, the query and
// any visible suggestions belong to the old type, so all are cleared.
// The empty type is allowed and means "unset".
func (c *FieldController) ChangeContentType(ct ContentType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = nil
	c.query = ""
	c.resetSuggestionsLocked()
	c.contentType = ct
	c.reportHeightLocked()
}

// ChangeCountry only affects searches issued afterwards.
func (c *FieldController) ChangeCountry(cc CountryCode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.country = cc
}

// Search looks up suggestions for query under the current type and market.
// An empty query clears the list without touching the network. Without a
// content type there is nothing to search. A failed lookup leaves the list
// as it was and flags SearchFailed.
func (c *FieldController) Search(ctx context.Context, query string) {
	c.mu.Lock()
	c.query = query

	if query == "" {
		c.resetSuggestionsLocked()
		c.reportHeightLocked()
		c.mu.Unlock()
		return
	}

	if !c.contentType.IsSet() {
		c.mu.Unlock()
		return
	}

	c.searchSeq++
	seq := c.searchSeq
	ct, cc := c.contentType, c.country
	c.searching = true
	c.reportHeightLocked()
	c.mu.Unlock()

	suggestions, err := c.fetcher.FetchSuggestions(ctx, ct, query, cc)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.searchSeq || ct != c.contentType {
		logger.Debug("Dropping stale suggestion response", "query", query, "seq", strconv.FormatUint(seq, 10))
		return
	}

	if err != nil {
		logger.LogErr(err, "suggestion search failed", "type", string(ct), "country", string(cc))
		c.searchFailed = true
		return
	}

	c.searchFailed = false
	c.suggestions = suggestions
}

// Select makes s the current selection, clears the query, closes the list
// and commits.
func (c *FieldController) Select(s Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := s
	c.selected = &selected
	c.query = ""
	c.resetSuggestionsLocked()
	c.reportHeightLocked()
	c.commitIfCompleteLocked()
}

// RemoveSelection drops the current selection but keeps the content type.
// The stored value is left alone until a new selection is made.
func (c *FieldController) RemoveSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = nil
	c.reportHeightLocked()
}

// State returns a copy of the current session state.
func (c *FieldController) State() FieldState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := FieldState{
		ContentType:  c.contentType,
		Country:      c.country,
		Suggestions:  append([]Suggestion{}, c.suggestions...),
		Query:        c.query,
		Searching:    c.searching,
		SearchFailed: c.searchFailed,
		Height:       c.height,
	}
	if c.selected != nil {
		selected := *c.selected
		state.Selected = &selected
	}
	if c.value != nil {
		value := *c.value
		state.Value = &value
	}
	if c.commitErr != nil {
		state.CommitError = c.commitErr.Error()
	}
	return state
}

// resetSuggestionsLocked empties the list and supersedes any search in flight.
func (c *FieldController) resetSuggestionsLocked() {
	c.searchSeq++
	c.suggestions = []Suggestion{}
	c.searching = false
	c.searchFailed = false
}

func (c *FieldController) reportHeightLocked() {
	height := BaseFieldHeight + c.measure(c.selected)
	if c.searching {
		height += SearchingExtraHeight
	}
	c.height = height
	if c.viewport != nil {
		c.viewport.UpdateHeight(height)
	}
}

func (c *FieldController) commitIfCompleteLocked() {
	if !c.contentType.IsSet() || c.selected == nil {
		return
	}

	value := NewFieldValue(c.contentType, *c.selected)
	if err := c.store.SetValue(value); err != nil {
		c.commitErr = err
		logger.LogErr(serr.Wrap(err, "failed to commit field value"), "host store write", "id", value.ID)
		return
	}

	c.commitErr = nil
	c.value = &value
	logger.Info("Field value committed", "type", string(value.Type), "id", value.ID)
}
