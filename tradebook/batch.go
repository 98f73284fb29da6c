package tradebook

import "context"

type batchOpKind int

const (
	batchPut batchOpKind = iota
	batchDelete
)

type batchOp struct {
	Kind  batchOpKind
	Trade *Trade // for put
	ID    string // for delete
}

// Batch accumulates puts and deletes for one-transaction execution, used
// by bulk import.
type Batch struct {
	ops []batchOp
}

func NewBatch() Batch {
	return Batch{ops: make([]batchOp, 0)}
}

func (b *Batch) Put(t *Trade) error {
	if t == nil {
		return New(ErrInvalid, "trade is nil")
	}
	b.ops = append(b.ops, batchOp{Kind: batchPut, Trade: t})
	return nil
}

func (b *Batch) Delete(id string) error {
	if id == "" {
		return New(ErrInvalid, "id cannot be empty")
	}
	b.ops = append(b.ops, batchOp{Kind: batchDelete, ID: id})
	return nil
}

func (b *Batch) Len() int {
	return len(b.ops)
}

func (b *Batch) Empty() bool {
	return len(b.ops) == 0
}

// Execute is implemented on Journal to keep storage access internal
func (b *Batch) Execute(ctx context.Context, j *Journal) (int, error) {
	return j.Batch(ctx, *b)
}
