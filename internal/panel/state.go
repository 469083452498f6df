package panel

import (
	"context"

	"go.uber.org/zap"

	"github.com/jafarshop/productadmin/internal/domain"
)

// The panel state machines mirror what the browser UI keeps in memory: the
// current product list with its cursor, and one modal per product-level
// action. In-flight flags gate transitions the way disabled buttons do; the
// types are not safe for concurrent use, matching a single UI event loop.

// ListState holds the product list and pagination state.
// Transitions: idle -> loading -> idle. LoadMore when HasNextPage is false
// or a load is in flight is a no-op.
type ListState struct {
	client *Client
	logger *zap.Logger

	Products []domain.Product
	cursor   *string
	hasNext  bool
	loading  bool
	loaded   bool

	// LastError is the most recent load failure, cleared on the next
	// successful load.
	LastError string
}

func NewListState(client *Client, logger *zap.Logger) *ListState {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListState{client: client, logger: logger}
}

func (s *ListState) Loading() bool     { return s.loading }
func (s *ListState) HasNextPage() bool { return s.hasNext }

// Load fetches the first page, discarding whatever was loaded before.
// Navigation always starts fresh; nothing is cached across it.
func (s *ListState) Load(ctx context.Context) {
	if s.loading {
		return
	}
	s.Products = nil
	s.cursor = nil
	s.hasNext = false
	s.loaded = false
	s.fetch(ctx, "")
}

// LoadMore fetches the next page and appends it. No-op when there is no next
// page, a load is in flight, or Load has not run yet.
func (s *ListState) LoadMore(ctx context.Context) {
	if s.loading || !s.loaded || !s.hasNext || s.cursor == nil {
		return
	}
	s.fetch(ctx, *s.cursor)
}

func (s *ListState) fetch(ctx context.Context, after string) {
	s.loading = true
	defer func() { s.loading = false }()

	resp, err := s.client.ListProducts(ctx, after)
	if err != nil {
		s.LastError = err.Error()
		s.logger.Warn("Product list load failed", zap.Error(err))
		return
	}
	if resp.Error != "" {
		// Empty list plus error field means the backend's upstream call
		// failed, not that the catalog ended.
		s.LastError = resp.Error
		s.logger.Warn("Product list load failed upstream", zap.String("error", resp.Error))
		return
	}

	s.LastError = ""
	s.loaded = true
	s.Products = append(s.Products, resp.Products...)
	s.hasNext = resp.PageInfo.HasNextPage
	s.cursor = resp.PageInfo.EndCursor
}

// remove drops a product from the loaded snapshot after a confirmed delete.
func (s *ListState) remove(id string) {
	kept := s.Products[:0]
	for _, p := range s.Products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.Products = kept
}

// patch replaces a product in the loaded snapshot after a confirmed update.
func (s *ListState) patch(updated domain.Product) {
	for i, p := range s.Products {
		if p.ID == updated.ID {
			s.Products[i] = updated
			return
		}
	}
}

// EditPhase is the edit modal's lifecycle: closed -> editing -> saving, then
// back to closed on success or to editing (with LastError set) on failure.
type EditPhase int

const (
	EditClosed EditPhase = iota
	EditEditing
	EditSaving
)

// EditState is the edit-product modal. Draft fields are staged locally and
// only sent on Save.
type EditState struct {
	list  *ListState
	phase EditPhase

	ProductID string
	Title     string
	Status    domain.ProductStatus
	Tags      []string

	// LastError surfaces save failures to the user instead of burying them
	// in a log.
	LastError string
}

func NewEditState(list *ListState) *EditState {
	return &EditState{list: list}
}

func (s *EditState) Phase() EditPhase { return s.phase }

// Open stages a product for editing. No-op while a save is in flight.
func (s *EditState) Open(p domain.Product) {
	if s.phase == EditSaving {
		return
	}
	s.phase = EditEditing
	s.ProductID = p.ID
	s.Title = p.Title
	s.Status = p.Status
	s.Tags = append([]string(nil), p.Tags...)
	s.LastError = ""
}

// Cancel closes the modal and discards the draft. No-op while saving.
func (s *EditState) Cancel() {
	if s.phase != EditEditing {
		return
	}
	s.phase = EditClosed
	s.LastError = ""
}

// Save submits the draft. On success the modal closes and the list snapshot
// is patched; on failure the modal stays open with LastError set.
func (s *EditState) Save(ctx context.Context) {
	if s.phase != EditEditing {
		return
	}
	s.phase = EditSaving

	resp, err := s.list.client.UpdateProduct(ctx, s.ProductID, s.Title, s.Status, s.Tags)
	if err != nil {
		s.phase = EditEditing
		s.LastError = err.Error()
		return
	}
	if !resp.Success {
		s.phase = EditEditing
		s.LastError = mutationFailureMessage(resp)
		return
	}

	if resp.UpdatedProduct != nil {
		s.list.patch(*resp.UpdatedProduct)
	}
	s.phase = EditClosed
	s.LastError = ""
}

// DeletePhase is the delete modal's lifecycle: closed -> confirming ->
// deleting, then back to closed on success or to confirming on failure.
type DeletePhase int

const (
	DeleteClosed DeletePhase = iota
	DeleteConfirming
	DeleteDeleting
)

// DeleteState is the delete-confirmation modal.
type DeleteState struct {
	list  *ListState
	phase DeletePhase

	ProductID string
	LastError string
}

func NewDeleteState(list *ListState) *DeleteState {
	return &DeleteState{list: list}
}

func (s *DeleteState) Phase() DeletePhase { return s.phase }

// Open asks for confirmation before deleting. No-op while a delete is in
// flight.
func (s *DeleteState) Open(p domain.Product) {
	if s.phase == DeleteDeleting {
		return
	}
	s.phase = DeleteConfirming
	s.ProductID = p.ID
	s.LastError = ""
}

// Cancel closes the confirmation. No-op while deleting.
func (s *DeleteState) Cancel() {
	if s.phase != DeleteConfirming {
		return
	}
	s.phase = DeleteClosed
	s.LastError = ""
}

// Confirm performs the delete. On success the product leaves the list
// snapshot and the modal closes; on failure it returns to confirming with
// LastError set. Confirming twice while a delete is in flight is a no-op.
func (s *DeleteState) Confirm(ctx context.Context) {
	if s.phase != DeleteConfirming {
		return
	}
	s.phase = DeleteDeleting

	resp, err := s.list.client.DeleteProduct(ctx, s.ProductID)
	if err != nil {
		s.phase = DeleteConfirming
		s.LastError = err.Error()
		return
	}
	if !resp.Success {
		s.phase = DeleteConfirming
		s.LastError = mutationFailureMessage(resp)
		return
	}

	s.list.remove(resp.DeletedID)
	s.phase = DeleteClosed
	s.LastError = ""
}

func mutationFailureMessage(resp *MutationResponse) string {
	if len(resp.Errors) > 0 {
		msg := resp.Errors[0].Message
		for _, ue := range resp.Errors[1:] {
			msg += "; " + ue.Message
		}
		return msg
	}
	if resp.Error != "" {
		return resp.Error
	}
	return "request failed"
}
