package irt

// SelectNextItem returns the unused bank item with maximal Fisher
// information at the current ability estimate. Ties keep the first item
// encountered, so selection is deterministic for a fixed bank order.
// Returns nil when every item has been used.
func SelectNextItem(theta float64, bank []BankItem, usedIDs map[string]bool) *BankItem {
	var best *BankItem
	bestInfo := -1.0
	for i := range bank {
		if usedIDs[bank[i].ID] {
			continue
		}
		info := FisherInformation(theta, bank[i].Params)
		if info > bestInfo {
			best = &bank[i]
			bestInfo = info
		}
	}
	return best
}
