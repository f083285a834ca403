package messages

// Location is a position in a source file. Lines are 1-based.
type Location struct {
	Line   int64  `json:"line"`
	Column *int64 `json:"column,omitempty"`
}

// GherkinDocument is one parsed source file. Feature is nil for a file
// without a Feature keyword.
type GherkinDocument struct {
	URI      string    `json:"uri,omitempty"`
	Feature  *Feature  `json:"feature,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

type Comment struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

type Tag struct {
	Location Location `json:"location"`
	Name     string   `json:"name"`
	ID       string   `json:"id"`
}

// Feature has no id of its own; it is identified by the document it
// belongs to.
type Feature struct {
	Location    Location       `json:"location"`
	Tags        []Tag          `json:"tags,omitempty"`
	Language    string         `json:"language"`
	Keyword     string         `json:"keyword"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Children    []FeatureChild `json:"children,omitempty"`
}

// FeatureChild holds exactly one of Rule, Background or Scenario.
type FeatureChild struct {
	Rule       *Rule       `json:"rule,omitempty"`
	Background *Background `json:"background,omitempty"`
	Scenario   *Scenario   `json:"scenario,omitempty"`
}

type Rule struct {
	Location    Location    `json:"location"`
	Tags        []Tag       `json:"tags,omitempty"`
	Keyword     string      `json:"keyword"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Children    []RuleChild `json:"children,omitempty"`
	ID          string      `json:"id"`
}

// RuleChild holds exactly one of Background or Scenario.
type RuleChild struct {
	Background *Background `json:"background,omitempty"`
	Scenario   *Scenario   `json:"scenario,omitempty"`
}

type Background struct {
	Location    Location `json:"location"`
	Keyword     string   `json:"keyword"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []Step   `json:"steps,omitempty"`
	ID          string   `json:"id"`
}

type Scenario struct {
	Location    Location   `json:"location"`
	Tags        []Tag      `json:"tags,omitempty"`
	Keyword     string     `json:"keyword"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Steps       []Step     `json:"steps,omitempty"`
	Examples    []Examples `json:"examples,omitempty"`
	ID          string     `json:"id"`
}

type Examples struct {
	Location    Location   `json:"location"`
	Tags        []Tag      `json:"tags,omitempty"`
	Keyword     string     `json:"keyword"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	TableHeader *TableRow  `json:"tableHeader,omitempty"`
	TableBody   []TableRow `json:"tableBody,omitempty"`
	ID          string     `json:"id"`
}

type TableRow struct {
	Location Location    `json:"location"`
	Cells    []TableCell `json:"cells"`
	ID       string      `json:"id"`
}

type TableCell struct {
	Location Location `json:"location"`
	Value    string   `json:"value"`
}

type Step struct {
	Location    Location   `json:"location"`
	Keyword     string     `json:"keyword"`
	KeywordType string     `json:"keywordType,omitempty"`
	Text        string     `json:"text"`
	DocString   *DocString `json:"docString,omitempty"`
	DataTable   *DataTable `json:"dataTable,omitempty"`
	ID          string     `json:"id"`
}

type DocString struct {
	Location  Location `json:"location"`
	MediaType string   `json:"mediaType,omitempty"`
	Content   string   `json:"content"`
	Delimiter string   `json:"delimiter"`
}

type DataTable struct {
	Location Location   `json:"location"`
	Rows     []TableRow `json:"rows"`
}
