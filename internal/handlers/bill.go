package handlers

import (
	"billed/internal/logger"
	"billed/internal/middleware"
	"billed/internal/models"
	"billed/internal/newbill"
	"billed/internal/services"
	helpers "billed/internal/utils/helpres"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BillService interface {
	CreateReceipt(ctx context.Context, actor models.Actor, email, fileName string, r io.Reader) (*models.ReceiptUpload, error)
	UpdateBill(ctx context.Context, actor models.Actor, id string, in *models.Bill) (*models.Bill, error)
	GetBill(ctx context.Context, actor models.Actor, id string) (*models.Bill, error)
	ListBills(ctx context.Context, actor models.Actor) ([]*models.Bill, error)
	OpenReceipt(ctx context.Context, actor models.Actor, id string) (*os.File, *models.Bill, error)
	DeleteBill(ctx context.Context, actor models.Actor, id string) error
}

type BillHandler struct {
	service        BillService
	maxUploadBytes int64
}

func NewBillHandler(service BillService, maxUploadBytes int64) *BillHandler {
	return &BillHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// CreateBill godoc
// @Summary Загрузка чека (create)
// @Tags bills
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Чек (jpg, jpeg, png)"
// @Param email formData string false "Email сотрудника"
// @Success 201 {object} models.ReceiptUpload
// @Failure 400 {string} string "Недопустимый формат"
// @Router /api/bills [post]
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.Warn("Ошибка разбора формы при загрузке чека", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Ошибка разбора формы")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("Файл не найден при загрузке", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Файл не найден")
		return
	}
	defer file.Close()

	up, err := h.service.CreateReceipt(r.Context(), actor, r.FormValue("email"), header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("Чек загружен", zap.String("bill_id", up.Key), zap.String("filename", header.Filename))
	helpers.JSON(w, http.StatusCreated, up)
}

// UpdateBill godoc
// @Summary Заполнение note de frais (update)
// @Tags bills
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Ключ note de frais"
// @Param input body models.Bill true "Поля формы"
// @Success 200 {object} models.Bill
// @Failure 400 {string} string "Ошибка валидации"
// @Failure 404 {string} string "Не найдена"
// @Router /api/bills/{id} [patch]
func (h *BillHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	id := mux.Vars(r)["id"]

	var in models.Bill
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&in); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в UpdateBill", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	bill, err := h.service.UpdateBill(r.Context(), actor, id, &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, bill)
}

// ListBills godoc
// @Summary Mes notes de frais
// @Tags bills
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Bill
// @Router /api/bills [get]
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	bills, err := h.service.ListBills(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.WithCtx(r.Context()).Debug("Notes de frais получены", zap.Int("count", len(bills)))
	helpers.JSON(w, http.StatusOK, bills)
}

// GetBill godoc
// @Summary Note de frais по ключу
// @Tags bills
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Ключ note de frais"
// @Success 200 {object} models.Bill
// @Failure 404 {string} string "Не найдена"
// @Router /api/bills/{id} [get]
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	bill, err := h.service.GetBill(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, bill)
}

// DownloadReceipt godoc
// @Summary Скачать чек
// @Tags bills
// @Security ApiKeyAuth
// @Produce octet-stream
// @Param id path string true "Ключ note de frais"
// @Success 200 {file} file
// @Failure 404 {string} string "Не найдена"
// @Router /api/bills/{id}/file [get]
func (h *BillHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	f, bill, err := h.service.OpenReceipt(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer f.Close()

	name := filepath.Base(bill.FilePath)
	if bill.FileName != nil && *bill.FileName != "" {
		name = *bill.FileName
	}
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": name}))

	stat, err := f.Stat()
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка чтения файла чека", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Файл не найден")
		return
	}
	http.ServeContent(w, r, name, stat.ModTime(), f)
}

// DeleteBill godoc
// @Summary Удалить note de frais
// @Tags bills
// @Security ApiKeyAuth
// @Param id path string true "Ключ note de frais"
// @Success 204
// @Failure 404 {string} string "Не найдена"
// @Router /api/bills/{id} [delete]
func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	if err := h.service.DeleteBill(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.WithCtx(r.Context())
	switch {
	case errors.Is(err, services.ErrInvalidExtension):
		helpers.Error(w, http.StatusBadRequest, newbill.BadFormatMessage)
	case errors.Is(err, services.ErrInvalidBill):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrBillNotFound):
		helpers.Error(w, http.StatusNotFound, "Note de frais не найдена")
	case errors.Is(err, services.ErrForbidden):
		helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
	default:
		log.Error("Ошибка сервиса notes de frais", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сервера")
	}
}
