// Package v1 holds the wire types of the papergen HTTP API.
package v1

import "time"

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

type Session struct {
	Id        string    `json:"id"`
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	Columns   []string  `json:"columns"`
	RowCount  int       `json:"rowCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionList []Session

type Row struct {
	Idx         int      `json:"idx"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Cells       []string `json:"cells"`
	Selected    bool     `json:"selected"`
	// Status is "not_submitted" for rows never submitted for generation.
	Status string `json:"status"`
}

type RowList []Row

type Selection struct {
	SessionId string `json:"sessionId"`
	Selected  []int  `json:"selected"`
}

type GenerationForm struct {
	Date      string `json:"date"`
	Signature string `json:"signature"`
}

type Paper struct {
	RowIdx    int        `json:"rowIdx"`
	Date      string     `json:"date"`
	Signature string     `json:"signature"`
	Status    string     `json:"status"`
	Error     *string    `json:"error,omitempty"`
	Filename  *string    `json:"filename,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type PaperList []Paper

type Info struct {
	VersionName string `json:"versionName"`
	GitCommit   string `json:"gitCommit"`
}

const StatusNotSubmitted = "not_submitted"
