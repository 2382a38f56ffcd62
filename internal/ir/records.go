package ir

// Outcome is the result of one attempted move.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
)

// Diagram is a stored grid snapshot. Rows are strings over {x, o, .}.
type Diagram struct {
	ID   string   `json:"id"` // DiagramID(Size, Rows)
	Size int      `json:"size"`
	Rows []string `json:"rows"`
}

// Object returns the hashed form of the diagram; the ID is not part of it.
func (d Diagram) Object() Object {
	return Object{
		"rows": Strings(d.Rows),
		"size": Int(d.Size),
	}
}

// Session is one editing session over an initial diagram.
type Session struct {
	Token         string `json:"token"`
	InitialID     string `json:"initial_id"`
	EngineVersion string `json:"engine_version"`
}

// Step is one attempted move within a session.
type Step struct {
	SessionToken string  `json:"session_token"`
	Seq          int64   `json:"seq"`
	Move         string  `json:"move"`
	Outcome      Outcome `json:"outcome"`
	Code         string  `json:"code,omitempty"` // set when rejected
	DiagramID    string  `json:"diagram_id"`     // diagram after the step
	Size         int     `json:"size"`
}

// Object returns the step as a canonical value. The session token is
// omitted so that identical move sequences snapshot identically.
func (s Step) Object() Object {
	obj := Object{
		"seq":        Int(s.Seq),
		"move":       String(s.Move),
		"outcome":    String(string(s.Outcome)),
		"diagram_id": String(s.DiagramID),
		"size":       Int(s.Size),
	}
	if s.Code != "" {
		obj["code"] = String(s.Code)
	}
	return obj
}
