package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/ports"
)

// JobHandler handles job posting and browsing.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postJobRequest  true  "Job details"
// @Success      201   {object}  postJobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.CreateJob(c.Request().Context(), ports.CreateJobInput{
		ClientID:          userID,
		Title:             req.Title,
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		PostalCode:        req.PostalCode,
		PreferredDateTime: req.PreferredDateTime,
		FlexibleTiming:    req.FlexibleTiming,
		BudgetRangeMin:    req.BudgetRangeMin,
		BudgetRangeMax:    req.BudgetRangeMax,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postJobResponse{
		Success: true,
		Message: "job posted successfully",
		JobID:   job.ID,
	})
}

// List handles GET /v1/jobs — all jobs, newest first.
//
// @Summary      Browse all posted jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}  jobResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.ListJobs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponses(jobs))
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job by id
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// ListPosted handles GET /v1/jobs/posted — the authenticated client's
// jobs, newest first. Zero jobs is a 200 with an empty array.
//
// @Summary      List the authenticated client's posted jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   jobResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/jobs/posted [get]
func (h *JobHandler) ListPosted(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListPostedJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponses(jobs))
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		JobID:             j.ID,
		ClientID:          j.ClientID,
		Title:             j.Title,
		Description:       j.Description,
		Address:           j.Address,
		City:              j.City,
		State:             j.State,
		PostalCode:        j.PostalCode,
		PreferredDateTime: j.PreferredDateTime,
		FlexibleTiming:    j.FlexibleTiming,
		BudgetRangeMin:    j.BudgetRangeMin,
		BudgetRangeMax:    j.BudgetRangeMax,
		Status:            string(j.Status),
		CreatedAt:         j.CreatedAt,
	}
}

func toJobResponses(jobs []*domain.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}
