package dex

// Item is a bag item. Inline marks items rendered on the same line as the
// previous entry in shop listings.
type Item struct {
	ID          int
	Name        string
	Description string
	Cost        int
	Page        int
	Action      string
	Inline      bool
	Emote       string
	Shard       bool
}

func (i *Item) String() string {
	return i.Name
}
