package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"prodrecon/internal/config"
	"prodrecon/internal/fileio"
	"prodrecon/internal/middleware"
	"prodrecon/internal/reconcile/model"
	"prodrecon/internal/reconcile/service"
	"prodrecon/internal/report"
)

const maxFormMemory = 32 << 20

// Handler — HTTP-оболочка вокруг движка. Держит последние сессии в LRU,
// чтобы отчёт можно было скачать повторно; между перезапусками ничего не хранится.
type Handler struct {
	defaults model.Params
	sessions *lru.Cache[string, *service.Session]
}

func New(cfg config.Config) (*Handler, error) {
	size := cfg.SessionCacheSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, *service.Session](size)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &Handler{defaults: cfg.Params(), sessions: cache}, nil
}

type reconcileResponse struct {
	SessionID string        `json:"session_id"`
	Trusted   bool          `json:"trusted"`
	Result    *model.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Reconcile — POST /reconcile, multipart с четырьмя файлами
// (materials, production, real_time, reported_time) и необязательными порогами.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		fail(w, r, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := make(map[model.Role]*multipart.FileHeader, len(model.Roles))
	for _, role := range model.Roles {
		fhs := r.MultipartForm.File[string(role)]
		if len(fhs) == 0 {
			fail(w, r, http.StatusBadRequest, "missing file: "+string(role))
			return
		}
		files[role] = fhs[0]
	}

	params := paramsFromForm(r, h.defaults)
	batch, err := loadBatch(r, files)
	if err != nil {
		if !errors.Is(err, fileio.ErrUnsupported) {
			log.Warn().Err(err).Msg("load batch")
		}
		fail(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Debug().
		Int("materials", len(batch.Materials.Rows)).
		Int("production", len(batch.Production.Rows)).
		Int("real_time", len(batch.RealTime.Rows)).
		Int("reported_time", len(batch.ReportedTime.Rows)).
		Interface("params", params).
		Msg("batch loaded")

	sess := service.NewSession(params, log)
	res, err := sess.Run(batch)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			fail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		fail(w, r, http.StatusInternalServerError, "reconcile failed")
		return
	}
	h.sessions.Add(sess.ID, sess)

	w.Header().Set("Cache-Control", "no-store")
	render.JSON(w, r, reconcileResponse{SessionID: sess.ID, Trusted: res.Trusted(), Result: res})
}

// Session — GET /sessions/{id}: последний результат сессии.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	res := sess.Last()
	render.JSON(w, r, reconcileResponse{SessionID: sess.ID, Trusted: res.Trusted(), Result: res})
}

// Report — GET /sessions/{id}/report.xlsx.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	b, err := report.Bytes(sess.Tables())
	if err != nil {
		l := middleware.Logger(r)
		l.Error().Err(err).Str("session", sess.ID).Msg("build report")
		fail(w, r, http.StatusInternalServerError, "report failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reconciliation-%s.xlsx"`, sess.ID))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(b)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := h.sessions.Get(id)
	if !ok || sess.Last() == nil {
		fail(w, r, http.StatusNotFound, "session not found: "+id)
		return nil, false
	}
	return sess, true
}

// loadBatch читает четыре файла параллельно.
func loadBatch(r *http.Request, files map[model.Role]*multipart.FileHeader) (model.Batch, error) {
	sets := make([]model.RawDataset, len(model.Roles))
	g, _ := errgroup.WithContext(r.Context())
	for i, role := range model.Roles {
		fh := files[role]
		headerRow := atoi(r.FormValue(string(role)+"_header_row"), 1)
		g.Go(func() error {
			f, err := fh.Open()
			if err != nil {
				return fmt.Errorf("%s: %w", role, err)
			}
			defer f.Close()
			ds, err := fileio.ReadAny(f, fh.Filename, headerRow)
			if err != nil {
				return fmt.Errorf("%s: %w", role, err)
			}
			ds.Role = role
			sets[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Batch{}, err
	}
	var batch model.Batch
	for _, ds := range sets {
		batch.Set(ds)
	}
	return batch, nil
}

func fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
