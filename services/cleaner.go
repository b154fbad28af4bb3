package services

import (
	"listing-profiler/models"
	"listing-profiler/table"
	"listing-profiler/utils"
)

// Cleaner removes incomplete and duplicate rows from a loaded table and
// re-declares identifier columns.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean cleans t in place and coerces the identifier columns present in it.
// Identifier columns missing from t are skipped with a warning.
func (c *Cleaner) Clean(t *table.Table, identifiers []string) (*models.CleanSummary, error) {
	s := &models.CleanSummary{
		RowsBefore:       t.Len(),
		DuplicatesBefore: t.DuplicateCount(),
	}

	res := t.Clean()
	s.MissingRows = res.MissingRows
	s.DuplicateRows = res.DuplicateRows
	s.RowsAfter = t.Len()
	s.DuplicatesAfter = t.DuplicateCount()
	s.NullsAfter = t.NullCounts()

	c.logger.Info("[cleaner] Dropped %d rows with missing values and %d duplicates: %d -> %d rows",
		s.MissingRows, s.DuplicateRows, s.RowsBefore, s.RowsAfter)

	present := make([]string, 0, len(identifiers))
	for _, name := range identifiers {
		if _, err := t.Column(name); err != nil {
			c.logger.Warn("[cleaner] Identifier column %q not found, skipping", name)
			continue
		}
		present = append(present, name)
	}
	if err := t.CoerceTypes(present...); err != nil {
		return s, err
	}
	s.Coerced = present
	if len(present) > 0 {
		c.logger.Debug("[cleaner] Coerced %v to identifiers", present)
	}
	return s, nil
}
