package v1

import (
	api "github.com/opengi/papergen/api/v1"
	"github.com/opengi/papergen/internal/store/model"
)

func sessionToApi(session *model.Session, rowCount int) api.Session {
	return api.Session{
		Id:        session.ID.String(),
		Filename:  session.Filename,
		Format:    session.Format,
		Columns:   session.ColumnHeaders(),
		RowCount:  rowCount,
		CreatedAt: session.CreatedAt,
	}
}

func sessionListToApi(sessions model.SessionList) api.SessionList {
	out := make(api.SessionList, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessionToApi(&sessions[i], len(sessions[i].Rows)))
	}
	return out
}

// rowListToApi merges selection flags with generation statuses. Rows never
// submitted report "not_submitted".
func rowListToApi(rows []model.Row, papers model.PaperList) api.RowList {
	statusByIdx := make(map[int]model.PaperStatus, len(papers))
	for _, paper := range papers {
		statusByIdx[paper.RowIdx] = paper.Status
	}

	out := make(api.RowList, 0, len(rows))
	for _, row := range rows {
		status := api.StatusNotSubmitted
		if s, ok := statusByIdx[row.Idx]; ok {
			status = string(s)
		}
		out = append(out, api.Row{
			Idx:         row.Idx,
			Name:        row.Name,
			Description: row.Description,
			Location:    row.Location,
			Cells:       row.CellValues(),
			Selected:    row.Selected,
			Status:      status,
		})
	}
	return out
}

func paperListToApi(papers model.PaperList) api.PaperList {
	out := make(api.PaperList, 0, len(papers))
	for _, paper := range papers {
		out = append(out, api.Paper{
			RowIdx:    paper.RowIdx,
			Date:      paper.Date,
			Signature: paper.Signature,
			Status:    string(paper.Status),
			Error:     paper.Error,
			Filename:  paper.Filename,
			UpdatedAt: paper.UpdatedAt,
		})
	}
	return out
}
