package drop

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datadrop/service/internal/auth"
	"github.com/datadrop/service/internal/middleware"
	"github.com/datadrop/service/internal/response"
	"github.com/datadrop/service/internal/storage"
	"github.com/datadrop/service/internal/validate"
)

// multipartMemory is the in-memory threshold for parsing multipart forms;
// larger parts spill to temp files.
const multipartMemory = 32 << 20

// Handler holds the HTTP handlers for the drop API.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

// NewHandler creates a drop Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// DropData godoc
//
//	@Summary		Upload structured data
//	@Description	Upload arbitrary structured data for one entity type of an x-system.
//	@Tags			api
//	@Accept			json
//	@Param			xSystem		path	string	true	"Name of the system that the data comes from"
//	@Param			entityType	path	string	true	"Name of the data file that is uploaded, if unsure use 'default'"
//	@Security		APIKeyAuth
//	@Success		200
//	@Success		202
//	@Failure		400	{object}	response.Problem
//	@Failure		401	{object}	response.Problem
//	@Failure		403	{object}	response.Problem
//	@Failure		422	{object}	response.Problem
//	@Router			/v0/{xSystem}/{entityType} [post]
func (h *Handler) DropData(w http.ResponseWriter, r *http.Request) {
	xSystem := chi.URLParam(r, "xSystem")
	entityType := chi.URLParam(r, "entityType")

	if !auth.IsAuthorized(xSystem, middleware.AuthorizedXSystems(r.Context())) {
		response.Forbidden(w, "API Key not authorized to drop data for this x-system.")
		return
	}
	if err := validate.Identifier(xSystem); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}
	if err := validate.Identifier(entityType); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	contentType := r.Header.Get("Content-Type")
	ext, err := validate.ExtensionFor(contentType)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.Detail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		response.BadRequest(w, "could not read request body")
		return
	}

	if ext == ".json" {
		if normalized, ok := normalizeJSON(body); ok {
			body = normalized
		}
	}

	deferred, err := h.svc.drop(r.Context(), xSystem, entityType+ext, body)
	if err != nil {
		h.svc.log.Error("write failed", "x_system", xSystem, "entity_type", entityType, "error", err)
		response.InternalError(w)
		return
	}
	if deferred {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DropDataMultipart godoc
//
//	@Summary		Upload multipart files
//	@Description	Upload a batch of named files for an x-system; each file is stored under its own filename.
//	@Tags			api
//	@Accept			multipart/form-data
//	@Param			xSystem	path		string	true	"Name of the system that the data comes from"
//	@Param			files	formData	file	true	"Files to upload"
//	@Security		APIKeyAuth
//	@Success		200
//	@Success		202
//	@Failure		400	{object}	response.Problem
//	@Failure		401	{object}	response.Problem
//	@Failure		403	{object}	response.Problem
//	@Failure		422	{object}	response.Problem
//	@Router			/v0/{xSystem} [post]
func (h *Handler) DropDataMultipart(w http.ResponseWriter, r *http.Request) {
	xSystem := chi.URLParam(r, "xSystem")

	if !auth.IsAuthorized(xSystem, middleware.AuthorizedXSystems(r.Context())) {
		response.Forbidden(w, "API Key not authorized to drop data for this x-system.")
		return
	}
	if err := validate.Identifier(xSystem); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		response.BadRequest(w, "could not parse multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.BadRequest(w, "no files in request")
		return
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Filename)
	}
	if err := validate.DuplicateFilenames(names); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	// Validate and buffer the whole batch before any write is scheduled,
	// so a rejected file never leaves earlier batch members behind.
	contents := make([][]byte, 0, len(files))
	for _, file := range files {
		if err := validate.Identifier(file.Filename); err != nil {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		if err := validate.FileExtension(file.Header.Get("Content-Type"), file.Filename); err != nil {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		content, err := readMultipartFile(file)
		if err != nil {
			response.BadRequest(w, "could not read uploaded file "+file.Filename)
			return
		}
		contents = append(contents, content)
	}

	// Writes are independent tasks: a failure here does not roll back
	// files already written for this batch.
	deferred := false
	for i, file := range files {
		wasDeferred, err := h.svc.drop(r.Context(), xSystem, file.Filename, contents[i])
		if err != nil {
			h.svc.log.Error("write failed", "x_system", xSystem, "filename", file.Filename, "error", err)
			response.InternalError(w)
			return
		}
		deferred = wasDeferred
	}
	if deferred {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DownloadData godoc
//
//	@Summary		Download data
//	@Description	Download the stored JSON artifact for one entity type of an x-system.
//	@Tags			api
//	@Produce		json
//	@Param			xSystem		path	string	true	"Name of the system that the data comes from"
//	@Param			entityType	path	string	true	"Name of the data file to download, without extension"
//	@Security		APIKeyAuth
//	@Success		200
//	@Failure		401	{object}	response.Problem
//	@Failure		403	{object}	response.Problem
//	@Failure		404	{object}	response.Problem
//	@Failure		422	{object}	response.Problem
//	@Router			/v0/{xSystem}/{entityType} [get]
func (h *Handler) DownloadData(w http.ResponseWriter, r *http.Request) {
	xSystem := chi.URLParam(r, "xSystem")
	entityType := chi.URLParam(r, "entityType")

	if !auth.IsAuthorized(xSystem, middleware.AuthorizedXSystems(r.Context())) {
		response.Forbidden(w, "API Key not authorized to download data for this x-system.")
		return
	}
	if err := validate.Identifier(xSystem); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}
	if err := validate.Identifier(entityType); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	content, err := h.svc.download(r.Context(), xSystem, entityType)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, "The requested data was not found on this server.")
			return
		}
		h.svc.log.Error("download failed", "x_system", xSystem, "entity_type", entityType, "error", err)
		response.InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// ListXSystems godoc
//
//	@Summary		List x-systems
//	@Description	List x-systems with available data. Requires the admin grant.
//	@Tags			api
//	@Produce		json
//	@Security		APIKeyAuth
//	@Success		200	{object}	map[string][]string
//	@Failure		401	{object}	response.Problem
//	@Failure		403	{object}	response.Problem
//	@Router			/v0/ [get]
func (h *Handler) ListXSystems(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAuthorized(auth.AdminXSystem, middleware.AuthorizedXSystems(r.Context())) {
		response.Forbidden(w, "API Key not authorized to list x-systems.")
		return
	}

	xSystems, err := h.svc.listXSystems(r.Context())
	if err != nil {
		h.svc.log.Error("list x-systems failed", "error", err)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]string{"x-systems": xSystems})
}

// ListEntityTypes godoc
//
//	@Summary		List entity types
//	@Description	List downloadable entity types of an x-system.
//	@Tags			api
//	@Produce		json
//	@Param			xSystem	path	string	true	"Name of the system that the data comes from"
//	@Security		APIKeyAuth
//	@Success		200	{object}	map[string][]string
//	@Failure		401	{object}	response.Problem
//	@Failure		403	{object}	response.Problem
//	@Failure		404	{object}	response.Problem
//	@Failure		422	{object}	response.Problem
//	@Router			/v0/{xSystem} [get]
func (h *Handler) ListEntityTypes(w http.ResponseWriter, r *http.Request) {
	xSystem := chi.URLParam(r, "xSystem")

	if !auth.IsAuthorized(xSystem, middleware.AuthorizedXSystems(r.Context())) {
		response.Forbidden(w, "API Key not authorized to list files for this x-system.")
		return
	}
	if err := validate.Identifier(xSystem); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	entityTypes, err := h.svc.listEntityTypes(r.Context(), xSystem)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, "The requested x-system was not found on this server.")
			return
		}
		h.svc.log.Error("list entity types failed", "x_system", xSystem, "error", err)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]string{"entity-types": entityTypes})
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
