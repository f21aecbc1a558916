package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/entities"
	"github.com/ssssstella/locallibrary/internal/forms"
)

// View names rendered by BookInstancesController.
const (
	ViewBookInstanceList   = "bookinstance_list"
	ViewBookInstanceDetail = "bookinstance_detail"
	ViewBookInstanceForm   = "bookinstance_form"
	ViewBookInstanceDelete = "bookinstance_delete"
)

const (
	titleBookInstanceList   = "Book Instance List"
	titleBookInstanceDetail = "Book:"
	titleBookInstanceCreate = "Create BookInstance"
	titleBookInstanceUpdate = "Update BookInstance"
	titleBookInstanceDelete = "Delete Bookinstance"

	msgBookInstanceNotFound = "Book copy not found"

	// FieldBookInstanceID names the body field of the delete confirmation form.
	FieldBookInstanceID = "bookinstanceid"

	bookInstanceListPath = "/catalog/bookinstances"

	maxFormMemory = 1 << 20
)

// BookInstancesController serves the book copy screens.
type BookInstancesController struct {
	store   BookInstanceStore
	books   BookTitleLister
	auditor BookInstanceAuditor // optional
	flash   FlashStore          // optional
}

func NewBookInstancesController(store BookInstanceStore, books BookTitleLister, auditor BookInstanceAuditor, flash FlashStore) *BookInstancesController {
	return &BookInstancesController{
		store:   store,
		books:   books,
		auditor: auditor,
		flash:   flash,
	}
}

// RegisterRoutes mounts the copy screens. The create routes are registered
// before the :id routes they would otherwise shadow.
func (bc *BookInstancesController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/catalog/bookinstances", bc.List)
	router.GET("/catalog/bookinstance/create", bc.CreateForm)
	router.POST("/catalog/bookinstance/create", bc.Create)
	router.GET("/catalog/bookinstance/:id", bc.Detail)
	router.GET("/catalog/bookinstance/:id/delete", bc.DeleteForm)
	router.POST("/catalog/bookinstance/:id/delete", bc.Delete)
	router.GET("/catalog/bookinstance/:id/update", bc.UpdateForm)
	router.POST("/catalog/bookinstance/:id/update", bc.Update)
}

// List renders every copy with its book.
func (bc *BookInstancesController) List(c *gin.Context) {
	instances, err := bc.store.ListBookInstances(c.Request.Context())
	if err != nil {
		_ = c.Error(fmt.Errorf("list book instances: %w", err))
		return
	}

	c.HTML(http.StatusOK, ViewBookInstanceList, pageData(c, bc.flash, gin.H{
		"title":             titleBookInstanceList,
		"bookinstance_list": instances,
	}))
}

// Detail renders one copy.
func (bc *BookInstancesController) Detail(c *gin.Context) {
	instance, err := bc.store.GetBookInstance(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(lookupError(err))
		return
	}

	c.HTML(http.StatusOK, ViewBookInstanceDetail, pageData(c, bc.flash, gin.H{
		"title":        titleBookInstanceDetail,
		"bookinstance": instance,
	}))
}

// CreateForm renders an empty copy form.
func (bc *BookInstancesController) CreateForm(c *gin.Context) {
	bc.renderForm(c, titleBookInstanceCreate, nil, nil)
}

// Create validates the submitted form and stores a new copy.
func (bc *BookInstancesController) Create(c *gin.Context) {
	instance, errs := bindBookInstance(c)
	if len(errs) > 0 {
		bc.renderForm(c, titleBookInstanceCreate, instance, errs)
		return
	}

	ctx := c.Request.Context()
	if err := bc.store.CreateBookInstance(ctx, instance); err != nil {
		_ = c.Error(fmt.Errorf("create book instance: %w", err))
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogBookInstanceCreated(ctx, instance, c.ClientIP())
	}
	setFlash(c, bc.flash, "Book copy created")
	c.Redirect(http.StatusFound, instance.URL())
}

// DeleteForm asks for confirmation. An unknown copy sends the user back to the list.
func (bc *BookInstancesController) DeleteForm(c *gin.Context) {
	instance, err := bc.store.GetBookInstance(c.Request.Context(), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.Redirect(http.StatusFound, bookInstanceListPath)
		return
	}
	if err != nil {
		_ = c.Error(fmt.Errorf("get book instance: %w", err))
		return
	}

	c.HTML(http.StatusOK, ViewBookInstanceDelete, pageData(c, bc.flash, gin.H{
		"title":        titleBookInstanceDelete,
		"bookinstance": instance,
	}))
}

// Delete removes the copy named in the form body. Deleting a copy that is
// already gone still redirects to the list but is not audited.
func (bc *BookInstancesController) Delete(c *gin.Context) {
	urlID := c.Param("id")
	id := c.PostForm(FieldBookInstanceID)
	if id == "" {
		id = urlID
	}
	if id != urlID {
		log.Warn().
			Str("url_id", urlID).
			Str("body_id", id).
			Msg("Book instance delete target differs from URL")
	}

	ctx := c.Request.Context()
	deleted, err := bc.store.DeleteBookInstance(ctx, id)
	if bc.auditor != nil && (deleted || err != nil) {
		bc.auditor.LogBookInstanceDeleted(ctx, id, c.ClientIP(), err)
	}
	if err != nil {
		_ = c.Error(fmt.Errorf("delete book instance: %w", err))
		return
	}

	setFlash(c, bc.flash, "Book copy deleted")
	c.Redirect(http.StatusFound, bookInstanceListPath)
}

// UpdateForm renders the copy form filled with the stored values.
func (bc *BookInstancesController) UpdateForm(c *gin.Context) {
	var (
		id       = c.Param("id")
		instance *entities.BookInstance
		options  formOptions
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		instance, err = bc.store.GetBookInstance(ctx, id)
		return err
	})
	options.load(ctx, g, bc.books)

	if err := g.Wait(); err != nil {
		_ = c.Error(lookupError(err))
		return
	}

	c.HTML(http.StatusOK, ViewBookInstanceForm, pageData(c, bc.flash, options.viewModel(titleBookInstanceUpdate, instance, nil)))
}

// Update validates the submitted form and overwrites the copy in place.
func (bc *BookInstancesController) Update(c *gin.Context) {
	instance, errs := bindBookInstance(c)
	instance.ID = c.Param("id")
	if len(errs) > 0 {
		bc.renderForm(c, titleBookInstanceUpdate, instance, errs)
		return
	}

	ctx := c.Request.Context()
	if err := bc.store.UpdateBookInstance(ctx, instance); err != nil {
		_ = c.Error(lookupError(err))
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogBookInstanceUpdated(ctx, instance, c.ClientIP())
	}
	setFlash(c, bc.flash, "Book copy updated")
	c.Redirect(http.StatusFound, instance.URL())
}

// renderForm loads the form choices and renders the copy form. A nil
// instance renders an empty form.
func (bc *BookInstancesController) renderForm(c *gin.Context, title string, instance *entities.BookInstance, errs forms.Errors) {
	var options formOptions

	g, ctx := errgroup.WithContext(c.Request.Context())
	options.load(ctx, g, bc.books)
	if err := g.Wait(); err != nil {
		_ = c.Error(fmt.Errorf("load book instance form: %w", err))
		return
	}

	c.HTML(http.StatusOK, ViewBookInstanceForm, pageData(c, bc.flash, options.viewModel(title, instance, errs)))
}

// formOptions are the choices offered by the copy form.
type formOptions struct {
	books    []entities.BookTitle
	statuses []entities.BookInstanceStatus
}

// load schedules the independent option reads on g.
func (o *formOptions) load(ctx context.Context, g *errgroup.Group, books BookTitleLister) {
	g.Go(func() error {
		var err error
		o.books, err = books.ListBookTitles(ctx)
		if err != nil {
			return fmt.Errorf("list book titles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		o.statuses = entities.BookInstanceStatuses()
		return nil
	})
}

func (o *formOptions) viewModel(title string, instance *entities.BookInstance, errs forms.Errors) gin.H {
	data := gin.H{
		"title":       title,
		"book_list":   o.books,
		"status_list": o.statuses,
	}
	if instance != nil {
		data["bookinstance"] = instance
		data["selected_book"] = instance.BookID
		data["selected_status"] = instance.Status
	}
	if len(errs) > 0 {
		data["errors"] = errs
	}
	return data
}

// bindBookInstance builds an unsaved copy from the sanitized form values.
func bindBookInstance(c *gin.Context) (*entities.BookInstance, forms.Errors) {
	// Fills PostForm for both urlencoded and multipart bodies. A malformed
	// body leaves it empty, which then fails validation.
	_ = c.Request.ParseMultipartForm(maxFormMemory)

	form, errs := forms.ParseBookInstanceForm(c.Request.PostForm)
	return &entities.BookInstance{
		BookID:  form.Book,
		Imprint: form.Imprint,
		Status:  entities.BookInstanceStatus(form.Status),
		DueBack: form.DueBack,
	}, errs
}

// lookupError maps a missing copy to a 404 and wraps anything else.
func lookupError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		notFound := NotFound(msgBookInstanceNotFound)
		notFound.Err = err
		return notFound
	}
	return fmt.Errorf("book instance: %w", err)
}
