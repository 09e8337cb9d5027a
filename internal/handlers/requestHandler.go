package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nkatturi/NotesAPI/internal/adapter"
	"github.com/nkatturi/NotesAPI/internal/adapter/utils"
	"github.com/nkatturi/NotesAPI/internal/api"
	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/rag"
	"github.com/nkatturi/NotesAPI/internal/rag/ingest"
	"github.com/nkatturi/NotesAPI/internal/rag/llm"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id       string
	subject  string
	fileName string
	traceId  string
	jobType  string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// CreateFolderHandler godoc
// @Summary      Create a notes folder
// @Description  Creates a folder (optionally nested under a parent) inside the notes root.
// @Tags         Folders
// @Accept       json
// @Produce      json
// @Param        request  body      api.FolderRequest   true  "Folder name and optional parent path"
// @Success      201      {object}  api.FolderResponse  "Folder created"
// @Failure      400      {object}  api.JobResponse     "Invalid folder name or path escape"
// @Router       /folders [post]
func CreateFolderHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {
		var requestData api.FolderRequest
		defer closeBody(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Name == "" {
			logRH.Warn("Bad folder request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.Name, "Bad Request")
			return
		}

		path, err := handlerInstance.notes.CreateFolder(requestData.Parent, requestData.Name)
		if err != nil {
			logRH.Warn("Folder creation rejected", "err", err)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.Name, err.Error())
			return
		}
		writeJsonResponse(w, http.StatusCreated, api.FolderResponse{Message: "Folder created", Path: path})
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// GetTreeHandler godoc
// @Summary      List the notes folder tree
// @Description  Returns the nested folder/file structure under the notes root.
// @Tags         Folders
// @Produce      json
// @Success      200  {array}   notesStore.TreeNode
// @Failure      500  {object}  api.JobResponse
// @Router       /tree [get]
func GetTreeHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		tree, err := handlerInstance.notes.ListTree()
		if err != nil {
			logRH.Error("Couldn't list notes tree", "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
			return
		}
		writeJsonResponse(w, http.StatusOK, tree)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// UploadHandler godoc
// @Summary      Upload a notes file for a subject
// @Description  Receives a file via multipart/form-data, saves it under the subject folder, and queues an extract-then-ingest job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        subject   formData  string  true  "Subject folder the file belongs to"
// @Param        document  formData  file    true  "The image, PDF, DOCX or text file to upload"
// @Success      202  {object}  api.InitJobResponse  "Accepted - job queued"
// @Failure      400  {object}  api.JobResponse      "Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		const maxUploadSize = 32 << 20 //32mb
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		subject := r.FormValue("subject")
		if subject == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "subject is required")
			return
		}
		if !handlerInstance.notes.SubjectExists(subject) {
			WriteErrorResponse(w, http.StatusNotFound, subject, "Unknown subject folder")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, subject, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		if _, err := handlerInstance.notes.SaveUpload(subject, fileMetadata.Filename, fileReader); err != nil {
			logRH.Error("Couldn't save upload", "subject", subject, "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, subject, "Storage error")
			return
		}

		processNewJobData(r, w, subject, fileMetadata.Filename)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// ExtractHandler godoc
// @Summary      Extract text from a subject's files
// @Description  Runs OCR / parsing over every file in the subject folder and writes .txt siblings.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.SubjectRequest   true  "Subject folder to process"
// @Success      200      {object}  api.ExtractResponse
// @Failure      404      {object}  api.JobResponse  "Unknown subject folder"
// @Router       /extract [post]
func ExtractHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		subject, ok := decodeSubject(w, r)
		if !ok {
			return
		}

		report, err := handlerInstance.extractor.ExtractSubject(r.Context(), subject)
		if err != nil {
			logRH.Warn("Extraction failed", "subject", subject, "err", err)
			WriteErrorResponse(w, http.StatusNotFound, subject, "Unknown subject folder")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToExtractResponse(report))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// IngestHandler godoc
// @Summary      Rebuild a subject's vector collection
// @Description  Chunks and embeds every extracted text in the subject folder, then replaces its collection.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.SubjectRequest  true  "Subject folder to ingest"
// @Success      200      {object}  api.IngestResponse
// @Failure      404      {object}  api.JobResponse  "Subject has no extracted text"
// @Failure      500      {object}  api.JobResponse  "Embedding or vector store failure"
// @Router       /ingest [post]
func IngestHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		subject, ok := decodeSubject(w, r)
		if !ok {
			return
		}

		report, err := handlerInstance.ragService.IngestSubject(r.Context(), subject)
		if err != nil {
			if errors.Is(err, ingest.ErrNoContent) {
				WriteErrorResponse(w, http.StatusNotFound, subject, "No ingestible text in subject folder")
				return
			}
			logRH.Error("Ingestion failed", "subject", subject, "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, subject, "Ingestion failed")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToIngestResponse(report))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// QueryHandler godoc
// @Summary      Ask a question against a subject's notes
// @Description  Retrieves the closest chunks from the subject collection and generates an answer. Failures still return the retrieved source documents.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "Subject and question"
// @Success      200      {object}  api.QueryResponse
// @Failure      404      {object}  api.QueryResponse  "Subject was never ingested or holds no chunks"
// @Failure      502      {object}  api.QueryResponse  "Embedding, search or generation failure"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var requestData api.QueryRequest
		defer closeBody(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Subject == "" || requestData.Query == "" {
			logRH.Warn("Bad query request: ", "error:", err, "request data:", requestData)
			writeJsonResponse(w, http.StatusBadRequest, adapter.ToQueryResponse(
				commonModels.QueryResult{Query: requestData.Query}, "subject and query are required"))
			return
		}

		result, err := handlerInstance.ragService.Answer(r.Context(), requestData.Subject, requestData.Query)
		if err != nil {
			writeJsonResponse(w, queryErrorStatus(err), adapter.ToQueryResponse(result, err.Error()))
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(result, ""))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

func queryErrorStatus(err error) int {
	switch {
	case errors.Is(err, rag.ErrCollectionNotFound), errors.Is(err, rag.ErrEmptyCollection):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrMissingCredential):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func decodeSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	var requestData api.SubjectRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Subject == "" {
		logRH.Warn("Bad subject request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "subject is required")
		return "", false
	}
	return requestData.Subject, true
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body reader :", err)
	}
}
