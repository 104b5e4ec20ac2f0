package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"providercard-service/internal/app/contracts"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/exceptions"
	"providercard-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type RegistryController struct {
	Log             *zap.Logger
	RegistryUsecase contracts.RegistryUsecase
	ProbeUsecase    contracts.ProbeUsecase
}

var (
	registryControllerInstance *RegistryController
	onceRegistryController     sync.Once
)

func NewRegistryController(logger *zap.Logger, registryUsecase contracts.RegistryUsecase, probeUsecase contracts.ProbeUsecase) *RegistryController {
	onceRegistryController.Do(func() {
		registryControllerInstance = &RegistryController{
			Log:             logger,
			RegistryUsecase: registryUsecase,
			ProbeUsecase:    probeUsecase,
		}
	})
	return registryControllerInstance
}

func (ctrl *RegistryController) Upsert(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("RegistryController.Upsert requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("RegistryController.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.UpsertRegistryEntry{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("RegistryController.Upsert validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.RegistryUsecase.Upsert(ctx, request)
	if err != nil {
		ctrl.Log.Error("RegistryController.Upsert error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("RegistryController.Upsert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationNameKey, result.OrganizationName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UpsertRegistryEntrySuccessMessage, result)
}

func (ctrl *RegistryController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("RegistryController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("RegistryController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	pagination := utils.BuildPaginationRequest(r)
	request := &requests.ListRegistryEntries{
		Pagination: *pagination,
		Status:     r.URL.Query().Get("status"),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, total, err := ctrl.RegistryUsecase.FindAll(ctx, request)
	if err != nil {
		ctrl.Log.Error("RegistryController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)

	ctrl.Log.Info("RegistryController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(entries)),
	)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetRegistryEntriesSuccessMessage, paginationResponse, entries)
}

func (ctrl *RegistryController) EnqueueProbe(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("RegistryController.EnqueueProbe requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	entryID := chi.URLParam(r, "entryID")
	ctrl.Log.Info("RegistryController.EnqueueProbe called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.ProbeUsecase.EnqueueProbe(ctx, entryID); err != nil {
		ctrl.Log.Error("RegistryController.EnqueueProbe error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.EnqueueProbeSuccessMessage, nil)
}

func (ctrl *RegistryController) Deactivate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("RegistryController.Deactivate requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	entryID := chi.URLParam(r, "entryID")
	ctrl.Log.Info("RegistryController.Deactivate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.RegistryUsecase.Deactivate(ctx, entryID); err != nil {
		ctrl.Log.Error("RegistryController.Deactivate error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeactivateEntrySuccessMessage, nil)
}
