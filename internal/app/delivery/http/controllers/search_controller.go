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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SearchController struct {
	Log           *zap.Logger
	SearchUsecase contracts.SearchUsecase
}

var (
	searchControllerInstance *SearchController
	onceSearchController     sync.Once
)

func NewSearchController(logger *zap.Logger, searchUsecase contracts.SearchUsecase) *SearchController {
	onceSearchController.Do(func() {
		searchControllerInstance = &SearchController{
			Log:           logger,
			SearchUsecase: searchUsecase,
		}
	})
	return searchControllerInstance
}

func (ctrl *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SearchController.Search requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SearchController.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.ProviderSearch{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("SearchController.Search cannot parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("SearchController.Search validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNPIKey, request.NPI),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.SearchUsecase.Search(ctx, request)
	if err != nil {
		ctrl.Log.Error("SearchController.Search error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("SearchController.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNPIKey, result.NPI),
		zap.Int(constvars.LoggingSourceCountKey, result.Summary.SourcesQueried),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SearchProvidersSuccessMessage, result)
}
