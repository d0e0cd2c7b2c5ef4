package inventory

import (
	"encoding/json"
	"os"
)

// manifestEntry is one line of the reorder manifest consumed by external
// reordering staff.
type manifestEntry struct {
	Ingredient  string `json:"ingredient"`
	DisplayName string `json:"display_name"`
	Amount      int    `json:"amount"`
	Threshold   int    `json:"threshold"`
	Requested   int    `json:"requested"`
}

// writeManifest rewrites the full requests file from the pending set. A
// write failure leaves the in-memory state committed; it is logged and
// never rolled back.
func (m *Manager) writeManifest() {
	entries := make([]manifestEntry, 0, len(m.pending))
	for _, ing := range m.ingredients {
		if !m.pending[ing.Name] {
			continue
		}
		entries = append(entries, manifestEntry{
			Ingredient:  ing.Name,
			DisplayName: ing.DisplayName,
			Amount:      ing.Amount,
			Threshold:   ing.Threshold,
			Requested:   m.reorderAmount,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		m.logger.Error("manifest_write_failed", "Failed to encode reorder manifest", "", err, nil)
		return
	}

	if err := os.WriteFile(m.requestsPath, data, 0o644); err != nil {
		m.logger.Error("manifest_write_failed", "Unable to update reorder requests file", "", err, map[string]interface{}{
			"path": m.requestsPath,
		})
	}
}
