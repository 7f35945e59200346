package dataprocessing

// GroupBySampleID partitions a table into per-identifier groups.
// Group order is the order each identifier first appears in the table,
// and rows inside a group keep their source order. Identifiers are
// compared exactly; Clean has already trimmed them.
func GroupBySampleID(table Table) []SampleGroup {
	index := make(map[string]int, len(table))
	groups := make([]SampleGroup, 0, len(table))

	for _, row := range table {
		i, seen := index[row.SampleID]
		if !seen {
			i = len(groups)
			index[row.SampleID] = i
			groups = append(groups, SampleGroup{ID: row.SampleID})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}
