package analysis

// Batch maps task titles to the comments collected for them. Titles keep
// their first-insertion order so the classification queue is deterministic.
type Batch struct {
	titles   []string
	comments map[string][]string
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{comments: make(map[string][]string)}
}

// Add appends texts under title. It reports whether title was already
// present, in which case the new texts are merged after the existing ones.
// Adding no texts is a no-op.
func (b *Batch) Add(title string, texts []string) (merged bool) {
	if len(texts) == 0 {
		return false
	}
	existing, ok := b.comments[title]
	if !ok {
		b.titles = append(b.titles, title)
	}
	b.comments[title] = append(existing, texts...)
	return ok
}

// Len is the total number of comments across all titles.
func (b *Batch) Len() int {
	n := 0
	for _, texts := range b.comments {
		n += len(texts)
	}
	return n
}

// Empty reports whether the batch holds no comments.
func (b *Batch) Empty() bool { return len(b.titles) == 0 }

// Items flattens the batch into the classification queue: titles in
// insertion order, each title's comments in order, indexed from zero.
func (b *Batch) Items() []Item {
	items := make([]Item, 0, b.Len())
	for _, title := range b.titles {
		for _, text := range b.comments[title] {
			items = append(items, Item{Index: len(items), TaskTitle: title, Comment: text})
		}
	}
	return items
}
