package importer

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	txhttp "github.com/MrJamesThe3rd/finanzas/internal/http/transaction"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Recorder counts imported and held-back rows.
type Recorder interface {
	ImportRows(imported, conflicts int)
}

type Handler struct {
	svc      *importer.Service
	maxBytes int64
	recorder Recorder
}

func NewHandler(svc *importer.Service, maxUploadMB int64, recorder Recorder) *Handler {
	return &Handler{svc: svc, maxBytes: maxUploadMB << 20, recorder: recorder}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/excel", h.importFile)
	r.Get("/template", h.template)
}

type importResponse struct {
	ID           uuid.UUID         `json:"import_id"`
	Format       importer.Format   `json:"format"`
	Rows         int               `json:"rows"`
	Imported     int               `json:"imported"`
	Transactions []txhttp.Response `json:"transactions"`
}

type conflictResponse struct {
	Incoming txhttp.Response `json:"incoming"`
	Existing txhttp.Response `json:"existing"`
}

type importConflictResponse struct {
	ID        uuid.UUID          `json:"import_id"`
	Error     string             `json:"error"`
	Pending   int                `json:"pending"`
	Conflicts []conflictResponse `json:"conflicts"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Error(w, r, apperr.InvalidField("file", fmt.Sprintf("must be at most %d MB", h.maxBytes>>20)))
			return
		}

		render.Error(w, r, apperr.InvalidField("file", "request must be multipart/form-data"))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, apperr.InvalidField("file", "is required"))
		return
	}
	defer file.Close()

	params := importer.Params{Filename: header.Filename}

	if s := r.FormValue("account_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			render.Error(w, r, apperr.InvalidField("account_id", "must be an integer"))
			return
		}

		params.AccountID = &id
	}

	if s := r.FormValue("force"); s != "" {
		force, err := strconv.ParseBool(s)
		if err != nil {
			render.Error(w, r, apperr.InvalidField("force", "must be true or false"))
			return
		}

		params.Force = force
	}

	res, err := h.svc.Import(r.Context(), params, file)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if h.recorder != nil {
		h.recorder.ImportRows(len(res.Imported), len(res.Conflicts))
	}

	if len(res.Conflicts) > 0 {
		resp := importConflictResponse{
			ID:        res.ID,
			Error:     "some rows look like existing transactions; resend with force=true to store them anyway",
			Pending:   res.Pending,
			Conflicts: make([]conflictResponse, 0, len(res.Conflicts)),
		}

		for _, c := range res.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictResponse{
				Incoming: txhttp.ToResponse(c.Incoming),
				Existing: txhttp.ToResponse(c.Existing),
			})
		}

		render.JSON(w, http.StatusConflict, resp)

		return
	}

	txs := make([]txhttp.Response, 0, len(res.Imported))
	for _, tx := range res.Imported {
		txs = append(txs, txhttp.ToResponse(tx))
	}

	render.Created(w, importResponse{
		ID:           res.ID,
		Format:       res.Format,
		Rows:         res.Rows,
		Imported:     len(res.Imported),
		Transactions: txs,
	})
}

func (h *Handler) template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="plantilla_importacion.xlsx"`)

	if err := h.svc.Template(r.Context(), w); err != nil {
		w.Header().Del("Content-Disposition")
		render.Error(w, r, err)
	}
}
