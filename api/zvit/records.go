package zvit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Quick-coder123/zvit/api"
	"github.com/Quick-coder123/zvit/api/constants"
	"github.com/Quick-coder123/zvit/api/utils"
	"github.com/Quick-coder123/zvit/internal/checksum"
	"github.com/Quick-coder123/zvit/internal/config"
	"github.com/Quick-coder123/zvit/internal/logger"
)

// recordRequest carries user_id for the session middleware alongside the
// record payload.
type recordRequest struct {
	UserID           string    `json:"user_id"`
	FIO              string    `json:"fio"`
	IPN              string    `json:"ipn"`
	Organization     string    `json:"organization"`
	DateOpened       string    `json:"date_opened"`
	DateFirstDeposit string    `json:"date_first_deposit"`
	AccountStatus    string    `json:"account_status"`
	CardStatus       string    `json:"card_status"`
	Documents        Documents `json:"documents"`
	Comment          string    `json:"comment"`
}

func (req *recordRequest) toRecord() Record {
	cardStatus := req.CardStatus
	if cardStatus == "" {
		cardStatus = CardIssuing
	}
	return Record{
		FIO:              req.FIO,
		IPN:              req.IPN,
		Organization:     req.Organization,
		DateOpened:       req.DateOpened,
		DateFirstDeposit: req.DateFirstDeposit,
		AccountStatus:    DeriveAccountStatus(req.AccountStatus, req.DateFirstDeposit),
		CardStatus:       cardStatus,
		Documents:        req.Documents,
		Comment:          req.Comment,
	}
}

func audit(msg string, args ...interface{}) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf(msg, args...))
	}
}

// GetRecords returns records newest first: the whole table by default, one
// page when the client asks for ?page= or ?limit=.
func GetRecords(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if utils.Requested(r) {
			params, err := utils.ExtractPagination(r)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			records, err := store.ListPage(r.Context(), params.Limit, params.Offset)
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			total, err := store.Count(r.Context())
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			params.SetPaginationStats(total)
			w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":    true,
				"rows":       records,
				"pagination": params,
			})
			return
		}
		records, err := store.List(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", records)
	}
}

// CreateRecord inserts one record from a form submit.
func CreateRecord(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.FIO == "" || req.IPN == "" || req.Organization == "" || req.DateOpened == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMissingFields)
			return
		}
		rec, err := store.Insert(r.Context(), req.toRecord())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		audit("record %d created by %s", rec.ID, api.UserEmailFromCtx(r.Context()))
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "record": rec})
	}
}

// UpdateRecord replaces all mutable fields of an existing record. No
// optimistic-concurrency check: a concurrent edit silently loses.
func UpdateRecord(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid record id")
			return
		}
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.FIO == "" || req.IPN == "" || req.Organization == "" || req.DateOpened == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMissingFields)
			return
		}
		rec, err := store.Update(r.Context(), id, req.toRecord())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		audit("record %d updated by %s", rec.ID, api.UserEmailFromCtx(r.Context()))
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "record": rec})
	}
}

// DeleteRecord removes one record by id. user_id rides in the query string.
func DeleteRecord(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid record id")
			return
		}
		if err := store.Delete(r.Context(), id); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		audit("record %d deleted by %s", id, api.UserEmailFromCtx(r.Context()))
		api.RespondWithResult(w, true, "")
	}
}

// BulkDeleteRecords removes a set of records in one call.
func BulkDeleteRecords(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string  `json:"user_id"`
			IDs    []int64 `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON or missing ids")
			return
		}
		deleted, err := store.DeleteBulk(r.Context(), req.IDs)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		audit("%d records deleted by %s", len(deleted), api.UserEmailFromCtx(r.Context()))
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "deleted": deleted})
	}
}

// ImportRecords ingests an uploaded workbook row by row. Partial success is
// expected and reported, never rolled back. A byte-identical re-upload is
// still processed but flagged with the batch it duplicates.
func ImportRecords(store *Store, uploads *checksum.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse multipart form")
			return
		}
		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "No files uploaded")
			return
		}
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to open file: "+fh.Filename)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to read file: "+fh.Filename)
			return
		}

		importedBy := api.UserEmailFromCtx(r.Context())
		batchID := uuid.New().String()
		digest := checksum.Digest(data)
		duplicateOf, isDuplicate := uploads.Seen(digest)
		if isDuplicate {
			audit("import batch %s by %s re-uploads file of batch %s", batchID, importedBy, duplicateOf)
		}
		uploads.Remember(digest, batchID)

		result := parseFailureResult()
		if rows, err := parseWorkbookFile(bytes.NewReader(data), fileExt(fh.Filename)); err == nil {
			result = RunImport(r.Context(), store, rowMaps(rows))
		}
		audit("import batch %s by %s: %d/%d rows, %d errors",
			batchID, importedBy, result.Success, result.Total, len(result.Errors))

		resp := map[string]interface{}{
			"success":  result.Success > 0,
			"batch_id": batchID,
			"result":   result,
		}
		if isDuplicate {
			resp["duplicate_of"] = duplicateOf
		}
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(resp)
	}
}

// ExportRecords streams the whole table as a date-stamped CSV file.
func ExportRecords(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.List(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		filename := fmt.Sprintf("zvit_%s.csv", time.Now().Format(constants.DateFormat))
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeCSV)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Write(SerializeCSV(records))
	}
}

// DownloadTemplate serves the one-row example workbook for imports.
func DownloadTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", `attachment; filename="shablon_import.xlsx"`)
		if err := WriteTemplate(w); err != nil {
			api.LogError("template download failed: %v", err)
		}
	}
}

// OpenedReport builds the organization × month matrix for a year.
func OpenedReport(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := time.Now().Year()
		if v := r.URL.Query().Get("year"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, "Invalid year")
				return
			}
			year = parsed
		}
		records, err := store.ListOpenedInYear(r.Context(), year)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		report := BuildMonthlyReport(records, year)
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"year":    year,
			"months":  MonthNames,
			"report":  report,
		})
	}
}

// ActivationReport builds the same matrix keyed by first-deposit date,
// without a year filter.
func ActivationReport(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.ListActivated(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"months":  MonthNames,
			"report":  BuildActivationReport(records),
		})
	}
}

// StatusSummary tallies active and pending accounts per organization.
func StatusSummary(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.List(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"summary": BuildStatusSummary(records),
		})
	}
}

// Health is a cheap connectivity probe against the record table.
func Health(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := store.Count(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "records": n})
	}
}
