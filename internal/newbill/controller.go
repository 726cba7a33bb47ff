// Package newbill — контроллер формы "Nouvelle note de frais": загрузка чека и отправка записи.
package newbill

import (
	"billed/internal/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Пути навигации.
const (
	PathBills   = "#employee/bills"
	PathNewBill = "#employee/bill/new"
)

var (
	ErrInvalidExtension = errors.New("недопустимый формат файла")
	ErrInvalidAmount    = errors.New("некорректная сумма")
	ErrInvalidDate      = errors.New("некорректная дата")
	ErrSuperseded       = errors.New("загрузка вытеснена новым выбором файла")
)

type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateValid
	StateInvalid
	StateUploading
	StateUploadOk
	StateUploadFailed
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file_selected"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	case StateUploading:
		return "uploading"
	case StateUploadOk:
		return "upload_ok"
	case StateUploadFailed:
		return "upload_failed"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// File — выбранный файл. Path — значение поля ввода (может содержать C:\fakepath\...),
// Name — имя самого файла.
type File struct {
	Path        string
	Name        string
	ContentType string
	Data        []byte
}

func (f File) path() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

func (f File) name() string {
	if f.Name != "" {
		return f.Name
	}
	return baseName(f.Path)
}

type CreateRequest struct {
	File  File
	Email string
}

type CreateResponse struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

type UpdateRequest struct {
	Data     json.RawMessage
	Selector string
}

// Store — удалённое хранилище notes de frais.
type Store interface {
	Create(ctx context.Context, req CreateRequest) (CreateResponse, error)
	Update(ctx context.Context, req UpdateRequest) error
}

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// View — то, что контроллер меняет в отображении формы.
type View interface {
	ClearFile()
	ShowMessage(msg string)
}

type noopView struct{}

func (noopView) ClearFile()         {}
func (noopView) ShowMessage(string) {}

type Session struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

// Upload — результат последней успешной загрузки чека.
type Upload struct {
	BillID   string
	FileURL  string
	FileName string
}

type Options struct {
	Store     Store
	Navigator Navigator
	View      View
	Session   Session
}

type Controller struct {
	store   Store
	nav     Navigator
	view    View
	session Session

	mu     sync.Mutex
	state  State
	gen    uint64
	file   *File
	upload Upload

	pending sync.WaitGroup
}

func NewController(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, errors.New("newbill: store is required")
	}
	if opts.Navigator == nil {
		return nil, errors.New("newbill: navigator is required")
	}
	if opts.Session.Email == "" {
		return nil, errors.New("newbill: session email is required")
	}
	view := opts.View
	if view == nil {
		view = noopView{}
	}
	return &Controller{
		store:   opts.Store,
		nav:     opts.Navigator,
		view:    view,
		session: opts.Session,
	}, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Upload() Upload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.upload
}

// SelectedFile — файл, который сейчас стоит в поле ввода (nil, если поле очищено).
func (c *Controller) SelectedFile() *File {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return nil
	}
	f := *c.file
	return &f
}

// OnFileSelected проверяет расширение и загружает чек. Ошибка загрузки логируется,
// состояние загрузки при этом не меняется.
func (c *Controller) OnFileSelected(ctx context.Context, f File) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateFileSelected
	c.mu.Unlock()

	ext := FileExtension(f.path())
	if !IsAllowedExtension(ext) {
		c.mu.Lock()
		if gen == c.gen {
			c.state = StateInvalid
			c.file = nil
			c.upload = Upload{}
		}
		c.mu.Unlock()

		logger.Log.Info("Недопустимое расширение чека", zap.String("file", f.path()), zap.String("ext", ext))
		c.view.ClearFile()
		c.view.ShowMessage(BadFormatMessage)
		return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	if !c.advance(gen, StateValid, nil) {
		return ErrSuperseded
	}
	c.view.ShowMessage("")

	if !c.advance(gen, StateUploading, &f) {
		return ErrSuperseded
	}

	resp, err := c.store.Create(ctx, CreateRequest{File: f, Email: c.session.Email})

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		logger.Log.Debug("Ответ на загрузку устарел, пропускаем", zap.String("file", f.name()))
		return ErrSuperseded
	}
	if err != nil {
		c.state = StateUploadFailed
		logger.Log.Error("Ошибка загрузки чека", zap.String("file", f.name()), zap.Error(err))
		return fmt.Errorf("upload receipt: %w", err)
	}

	c.upload = Upload{BillID: resp.Key, FileURL: resp.FileURL, FileName: f.name()}
	c.state = StateUploadOk
	logger.Log.Info("Чек загружен", zap.String("key", resp.Key), zap.String("file_url", resp.FileURL))
	return nil
}

// advance меняет состояние, только если выбор gen всё ещё последний.
func (c *Controller) advance(gen uint64, st State, f *File) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.state = st
	if f != nil {
		c.file = f
	}
	return true
}

// OnSubmit собирает note de frais и отправляет update. Навигация на список
// не ждёт ответа сервера.
func (c *Controller) OnSubmit(ctx context.Context, fields Fields) error {
	c.mu.Lock()
	up := c.upload
	c.mu.Unlock()

	c.view.ShowMessage("")
	if up.FileName == "" || !IsAllowedFile(up.FileName) {
		c.view.ClearFile()
		c.view.ShowMessage(BadFormatMessage)
		return ErrInvalidExtension
	}

	bill, err := BuildBill(c.session.Email, fields, up)
	if err != nil {
		return err
	}
	data, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("marshal bill: %w", err)
	}

	c.mu.Lock()
	c.state = StateSubmitted
	c.mu.Unlock()

	c.pending.Add(1)
	go c.updateBill(context.WithoutCancel(ctx), UpdateRequest{Data: data, Selector: up.BillID})

	c.nav.Navigate(PathBills)
	return nil
}

func (c *Controller) updateBill(ctx context.Context, req UpdateRequest) {
	defer c.pending.Done()
	if err := c.store.Update(ctx, req); err != nil {
		logger.Log.Error("Ошибка обновления note de frais", zap.String("bill_id", req.Selector), zap.Error(err))
		return
	}
	logger.Log.Info("Note de frais отправлена", zap.String("bill_id", req.Selector))
}

// Wait ждёт завершения отправленных update.
func (c *Controller) Wait() {
	c.pending.Wait()
}
