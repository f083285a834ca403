package messages

// Pickle is a compiled, parameter-resolved scenario or example row.
// The last entry of AstNodeIDs is the node it was compiled from.
type Pickle struct {
	ID         string       `json:"id"`
	URI        string       `json:"uri"`
	Location   *Location    `json:"location,omitempty"`
	Name       string       `json:"name"`
	Language   string       `json:"language"`
	Steps      []PickleStep `json:"steps"`
	Tags       []PickleTag  `json:"tags"`
	AstNodeIDs []string     `json:"astNodeIds"`
}

// Anchor returns the id of the node the pickle was compiled from.
func (p *Pickle) Anchor() (string, bool) {
	if p == nil || len(p.AstNodeIDs) == 0 {
		return "", false
	}
	return p.AstNodeIDs[len(p.AstNodeIDs)-1], true
}

type PickleStep struct {
	AstNodeIDs []string `json:"astNodeIds"`
	ID         string   `json:"id"`
	Type       string   `json:"type,omitempty"`
	Text       string   `json:"text"`
}

type PickleTag struct {
	Name      string `json:"name"`
	AstNodeID string `json:"astNodeId"`
}
