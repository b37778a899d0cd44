package controller

import (
	"errors"
	"net/http"

	"github.com/Scalingo/sclng-top-languages/config"
	"github.com/Scalingo/sclng-top-languages/model"
	"github.com/Scalingo/sclng-top-languages/service"
	"github.com/gin-gonic/gin"
)

type APIController interface {
	GetLanguages(ctx *gin.Context)
}

type apiController struct {
	languagesService service.LanguagesService
	config           config.Config
}

func NewAPIController(config config.Config, service service.LanguagesService) APIController {
	return apiController{
		languagesService: service,
		config:           config,
	}
}

func (s apiController) GetLanguages(c *gin.Context) {
	var query model.LanguagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.NewAPIError(model.ErrMissingArgument))
		return
	}

	// execute the request
	report, err := s.languagesService.TopLanguages(c.Request.Context(), query.ProfileURL())
	if err != nil {
		c.JSON(StatusForError(err), model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, report)
}

// StatusForError returns the http status matching the error
func StatusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrMissingArgument),
		errors.Is(err, model.ErrUnsupportedPlatform),
		errors.Is(err, model.ErrInvalidProfileURL):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
