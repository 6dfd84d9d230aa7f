package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uac/cafeteria-api/internal/api/handler/v1/request"
	"github.com/uac/cafeteria-api/internal/api/handler/v1/response"
	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/service"
	"github.com/uac/cafeteria-api/internal/validation"
)

type StudentService interface {
	Enroll(student *domain.Student) (string, error)
	Get(studentID int) (*domain.Student, error)
	Update(student *domain.Student) error
	Archive(studentID int) error
}

type StudentHandler struct {
	svc StudentService
}

func NewStudentHandler(svc StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// HandleEnroll godoc
// @Summary      Enroll a student (administrator)
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        request   body      request.EnrollStudentRequest true "request body"
// @Success      201      {object}   response.Enrollment
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /students [post]
func (h *StudentHandler) HandleEnroll(ctx *gin.Context) {
	var req request.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	student := studentFromRequest(&req)
	pin, err := h.svc.Enroll(student)
	if err != nil {
		h.renderStudentErr(ctx, "HandleEnroll", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.Enrollment{
		Student: response.NewStudent(student, false),
		Pin:     pin,
	})
}

// HandleGetStudent godoc
// @Summary      Get a student by its number (administrator)
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        studentID path      int true "student number"
// @Success      200      {object}   response.Student
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /students/{studentID} [get]
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentID")
	if !ok {
		return
	}

	student, err := h.svc.Get(studentID)
	if err != nil {
		h.renderStudentErr(ctx, "HandleGetStudent", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudent(student, true))
}

// HandleUpdateStudent godoc
// @Summary      Update a student's profile (administrator)
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        studentID path      int true "student number"
// @Param        request   body      request.UpdateStudentRequest true "request body"
// @Success      200      {object}   response.Student
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /students/{studentID} [put]
func (h *StudentHandler) HandleUpdateStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentID")
	if !ok {
		return
	}

	var req request.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	student, err := h.svc.Get(studentID)
	if err != nil {
		h.renderStudentErr(ctx, "HandleUpdateStudent", err)
		return
	}

	applyStudentRequest(student, (*request.EnrollStudentRequest)(&req))
	if err = h.svc.Update(student); err != nil {
		h.renderStudentErr(ctx, "HandleUpdateStudent", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewStudent(student, false))
}

// HandleArchiveStudent godoc
// @Summary      Archive a student (administrator)
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        studentID path      int true "student number"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /students/{studentID} [delete]
func (h *StudentHandler) HandleArchiveStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentID")
	if !ok {
		return
	}

	if err := h.svc.Archive(studentID); err != nil {
		h.renderStudentErr(ctx, "HandleArchiveStudent", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *StudentHandler) renderStudentErr(ctx *gin.Context, op string, err error) {
	var violations validation.Violations
	switch {
	case errors.As(err, &violations):
		response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
	case errors.Is(err, service.ErrStudentNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrStudentAlreadyThere):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func studentFromRequest(req *request.EnrollStudentRequest) *domain.Student {
	student := &domain.Student{}
	applyStudentRequest(student, req)
	return student
}

func applyStudentRequest(student *domain.Student, req *request.EnrollStudentRequest) {
	student.Name = req.Name
	student.Phone = req.Phone
	student.Email = req.Email
	student.Scholarship = req.Scholarship
	student.Course = req.Course

	if student.Address == nil {
		student.Address = &domain.Address{}
	}
	student.Address.Street = req.Address.Street
	student.Address.Number = req.Address.Number
	student.Address.PostalCode = req.Address.PostalCode
	student.Address.City = req.Address.City
}
