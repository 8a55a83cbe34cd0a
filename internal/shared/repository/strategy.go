package repository

// LoadStrategy selects how a query populates referenced entities.
type LoadStrategy uint8

const (
	// JoinedColumns reads related entities from columns joined into the same
	// SELECT, under a per-relation prefix.
	JoinedColumns LoadStrategy = iota
	// SeparateLookup reads only the foreign key and resolves the related
	// entity through its own repository.
	SeparateLookup
)

func (s LoadStrategy) String() string {
	switch s {
	case JoinedColumns:
		return "joined"
	case SeparateLookup:
		return "lookup"
	default:
		return "unknown"
	}
}
