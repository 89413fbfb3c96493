package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go-column-rules/config"
	"go-column-rules/internal/columns"
	"go-column-rules/internal/dataset"
	"go-column-rules/internal/model"
	"go-column-rules/internal/profile"
	"go-column-rules/internal/rules"
	"go-column-rules/internal/store"
	"go-column-rules/pkg/logger"
	"go-column-rules/pkg/utils"
)

const submissionsPrefix = "/api/v1/submissions/"

// maxUploadSize bounds dataset uploads held in memory by multipart parsing.
const maxUploadSize = 32 << 20

// maxPayloadSize bounds the JSON body of a rules submission.
const maxPayloadSize = 1 << 20

// Handler serves the rules API.
type Handler struct {
	store   *store.Store
	log     logger.LoggerI
	uploads *utils.OutputManager
	outputs *utils.OutputManager

	profileWorkers int

	// guards files in the uploads directory
	mu sync.Mutex
}

// New wires the handler to its dependencies. profileWorkers sets how many
// goroutines profile an uploaded dataset.
func New(st *store.Store, log logger.LoggerI, uploads, outputs *utils.OutputManager, profileWorkers int) *Handler {
	return &Handler{store: st, log: log, uploads: uploads, outputs: outputs, profileWorkers: profileWorkers}
}

// SaveFile stores a grouped rules payload
// @Summary Save column rules
// @Description Store the grouped form payload (column name to values) submitted by the rules form
// @Tags rules
// @Accept json
// @Produce json
// @Param payload body model.GroupedPayload true "Grouped form fields"
// @Success 200 {object} model.SaveResponse "Rules saved"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 413 {object} map[string]interface{} "Payload too large"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /save-file [post]
func (h *Handler) SaveFile(w http.ResponseWriter, r *http.Request) {
	var payload model.GroupedPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadSize)).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload == nil {
		payload = model.GroupedPayload{}
	}

	sub := model.Submission{
		ID:        uuid.New().String(),
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.SaveSubmission(r.Context(), sub); err != nil {
		h.log.Error("save submission", logger.Error(err))
		http.Error(w, "Failed to save rules", http.StatusInternalServerError)
		return
	}

	if err := h.writeRulesFile(payload); err != nil {
		h.log.Warn("mirror rules file", logger.String("id", sub.ID), logger.Error(err))
		h.recordError(r.Context(), sub.ID, err)
	}

	h.log.Info("rules saved", logger.String("id", sub.ID), logger.Int("columns", payload.Columns()))
	writeJSON(w, http.StatusOK, model.SaveResponse{
		Message: "File saved successfully",
		ID:      sub.ID,
		Columns: payload.Columns(),
	})
}

// UploadDataset stores an uploaded dataset
// @Summary Upload dataset
// @Description Store a CSV or XLSX dataset as user_data.csv and return its column classification and profile
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX dataset"
// @Success 200 {object} model.UploadResult "Dataset stored"
// @Failure 400 {object} map[string]interface{} "No file part or unreadable dataset"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /save [post]
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "No file part", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file part", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if header.Filename == "" {
		http.Error(w, "No selected file", http.StatusBadRequest)
		return
	}

	table, err := dataset.Read(file, header.Filename)
	if err != nil {
		h.log.Warn("read dataset", logger.String("file", header.Filename), logger.Error(err))
		if errors.Is(err, dataset.ErrUnsupportedFormat) {
			http.Error(w, "Unsupported file format", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to read dataset", http.StatusBadRequest)
		return
	}

	if err := h.storeDataset(table); err != nil {
		h.log.Error("store dataset", logger.String("file", header.Filename), logger.Error(err))
		http.Error(w, "Failed to store dataset", http.StatusInternalServerError)
		return
	}

	prof, err := profile.Build(r.Context(), table, h.profileWorkers, h.log)
	if err != nil {
		h.log.Error("profile dataset", logger.String("file", header.Filename), logger.Error(err))
		http.Error(w, "Failed to profile dataset", http.StatusInternalServerError)
		return
	}

	h.log.Info("dataset stored",
		logger.String("file", header.Filename),
		logger.Int("rows", prof.TotalRows),
		logger.Int("duplicates", prof.DuplicateRows),
	)
	writeJSON(w, http.StatusOK, model.UploadResult{
		Message: "Dataset uploaded successfully.",
		Columns: columns.Classify(table),
		Profile: prof,
	})
}

// GetColumns describes the rules form for the uploaded dataset
// @Summary Get columns
// @Description Classify the uploaded dataset's columns and list the rule fields to render
// @Tags datasets
// @Produce json
// @Success 200 {object} map[string]interface{} "Column set and fields"
// @Failure 404 {object} map[string]interface{} "No dataset uploaded"
// @Router /columns [get]
func (h *Handler) GetColumns(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadDataset()
	if err != nil {
		http.Error(w, "No dataset uploaded", http.StatusNotFound)
		return
	}

	set := columns.Classify(table)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"columns": set,
		"fields":  columns.Fields(set),
	})
}

// Next is the landing step after a dataset has been chosen.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Dataset ready. Open /columns to define rules.",
		"dataset": h.uploads.Exists(config.DatasetFileName),
	})
}

// ListSubmissions lists stored rule submissions
// @Summary List submissions
// @Description Get every saved rules payload, newest first
// @Tags rules
// @Produce json
// @Success 200 {array} model.SubmissionSummary "Submissions"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/submissions [get]
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context())
	if err != nil {
		h.log.Error("list submissions", logger.Error(err))
		http.Error(w, "Failed to fetch submissions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// GetSubmission returns one stored payload
// @Summary Get submission
// @Description Retrieve a saved rules payload
// @Tags rules
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} model.Submission "Submission"
// @Failure 400 {object} map[string]interface{} "Invalid submission ID"
// @Failure 404 {object} map[string]interface{} "Submission not found"
// @Router /api/v1/submissions/{id} [get]
func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := submissionID(r.URL.Path, "")
	if !ok {
		http.Error(w, "Submission ID is required", http.StatusBadRequest)
		return
	}

	sub, err := h.store.GetSubmission(r.Context(), id)
	if err != nil {
		h.notFoundOrError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// GetSubmissionErrors lists errors recorded against a submission
// @Summary Get submission errors
// @Description Retrieve errors raised while mirroring or applying a submission
// @Tags rules
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]interface{} "Errors"
// @Failure 400 {object} map[string]interface{} "Invalid submission ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/submissions/{id}/errors [get]
func (h *Handler) GetSubmissionErrors(w http.ResponseWriter, r *http.Request) {
	id, ok := submissionID(r.URL.Path, "/errors")
	if !ok {
		http.Error(w, "Submission ID is required", http.StatusBadRequest)
		return
	}

	msgs, err := h.store.GetSubmissionErrors(r.Context(), id)
	if err != nil {
		h.log.Error("get submission errors", logger.String("id", id), logger.Error(err))
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":     id,
		"errors": msgs,
		"count":  len(msgs),
	})
}

// ApplySubmission cleans the uploaded dataset with a stored payload
// @Summary Apply submission
// @Description Filter the uploaded dataset by the submission's rules and export clean_user_data.csv
// @Tags rules
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} model.CleanReport "Cleaning report"
// @Failure 400 {object} map[string]interface{} "Invalid submission ID"
// @Failure 404 {object} map[string]interface{} "Submission or dataset not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/submissions/{id}/apply [post]
func (h *Handler) ApplySubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := submissionID(r.URL.Path, "/apply")
	if !ok {
		http.Error(w, "Submission ID is required", http.StatusBadRequest)
		return
	}

	sub, err := h.store.GetSubmission(r.Context(), id)
	if err != nil {
		h.notFoundOrError(w, err)
		return
	}

	table, err := h.loadDataset()
	if err != nil {
		h.recordError(r.Context(), id, err)
		http.Error(w, "No dataset uploaded", http.StatusNotFound)
		return
	}

	cleaned, report := rules.Apply(table, sub.Payload)
	report.SubmissionID = id

	path, err := rules.ExportCSV(h.outputs, id, rules.CleanFileName(config.DatasetFileName), cleaned)
	if err != nil {
		h.log.Error("export clean dataset", logger.String("id", id), logger.Error(err))
		h.recordError(r.Context(), id, err)
		http.Error(w, "Failed to export dataset", http.StatusInternalServerError)
		return
	}
	report.Path = path

	h.log.Info("rules applied",
		logger.String("id", id),
		logger.Int("rows_in", report.RowsIn),
		logger.Int("rows_out", report.RowsOut),
	)
	writeJSON(w, http.StatusOK, report)
}

// storeDataset saves t as the current dataset. Workbooks are stored as CSV
// so every later read takes the same path.
func (h *Handler) storeDataset(t *model.Table) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.uploads.EnsureOutputDirExists(); err != nil {
		return err
	}
	return dataset.WriteCSV(h.uploads.GetFilePath(config.DatasetFileName), t)
}

func (h *Handler) loadDataset() (*model.Table, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return dataset.Load(h.uploads.GetFilePath(config.DatasetFileName))
}

func (h *Handler) writeRulesFile(payload model.GroupedPayload) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.uploads.EnsureOutputDirExists(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal rules file")
	}
	return errors.Wrap(os.WriteFile(h.uploads.GetFilePath(config.RulesFileName), raw, 0644), "write rules file")
}

// recordError stores err against a submission. A failure to store it is
// only logged.
func (h *Handler) recordError(ctx context.Context, id string, err error) {
	if serr := h.store.SaveSubmissionError(ctx, id, err); serr != nil {
		h.log.Warn("record submission error",
			logger.String("id", id),
			logger.String("cause", err.Error()),
			logger.Error(serr),
		)
	}
}

func (h *Handler) notFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Submission not found", http.StatusNotFound)
		return
	}
	h.log.Error("get submission", logger.Error(err))
	http.Error(w, "Failed to fetch submission", http.StatusInternalServerError)
}

// submissionID extracts the ID from /api/v1/submissions/{id}<suffix>.
func submissionID(path, suffix string) (string, bool) {
	if !strings.HasPrefix(path, submissionsPrefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := path[len(submissionsPrefix) : len(path)-len(suffix)]
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
