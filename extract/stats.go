package extract

import (
	"golang.org/x/exp/slog"
)

//*******************************************
// drop statistics
//*******************************************

// Stats counts entities dropped during preparation. Drops are routine
// data-quality filtering, never failures.
type Stats struct {
	DanglingEdges         int
	DuplicateEdges        int
	MalformedRestrictions int
	DanglingRestrictions  int
	UnsupportedRelations  int
}

func (self *Stats) Log() {
	slog.Info("drop summary",
		slog.Int("dangling-edges", self.DanglingEdges),
		slog.Int("duplicate-edges", self.DuplicateEdges),
		slog.Int("malformed-restrictions", self.MalformedRestrictions),
		slog.Int("dangling-restrictions", self.DanglingRestrictions),
		slog.Int("unsupported-relations", self.UnsupportedRelations),
	)
}
