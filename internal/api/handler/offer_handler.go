package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handyman/marketplace-api/internal/core/ports"
)

// OfferHandler handles bidding and hiring.
type OfferHandler struct {
	service ports.OfferService
}

func NewOfferHandler(service ports.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

// Make handles POST /v1/jobs/:id/offers. Resubmitting replaces the
// handyman's previous bid on the same job.
//
// @Summary      Submit or replace an offer on a job
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Job id"
// @Param        body  body      makeOfferRequest true  "Offer details"
// @Success      201   {object}  makeOfferResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/jobs/{id}/offers [post]
func (h *OfferHandler) Make(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req makeOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.SubmitOffer(c.Request().Context(), ports.SubmitOfferInput{
		HandymanID:       userID,
		JobID:            c.Param("id"),
		PriceQuote:       req.OfferAmount,
		AvailabilityDate: req.AvailableDate,
		EstimatedHours:   req.EstimatedHours,
		AdditionalNotes:  req.AdditionalNotes,
	})
	if err != nil {
		return err
	}

	msg := "offer submitted successfully"
	if result.Replaced {
		msg = "offer updated successfully"
	}
	return c.JSON(http.StatusCreated, makeOfferResponse{
		Success:       true,
		Message:       msg,
		ApplicationID: result.OfferID,
		Replaced:      result.Replaced,
	})
}

// List handles GET /v1/jobs/:id/offers. A job with no bids yields a
// 200 with an empty array; a missing job is a 404.
//
// @Summary      List offers on a job
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {array}   offerResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	offers, err := h.service.ListOffers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, offerResponse{
			ApplicationID:    o.ID,
			JobID:            o.JobID,
			HandymanID:       o.HandymanID,
			FirstName:        o.FirstName,
			LastName:         o.LastName,
			PriceQuote:       o.PriceQuote,
			AvailabilityDate: o.AvailabilityDate,
			EstimatedHours:   o.EstimatedHours,
			AdditionalNotes:  o.AdditionalNotes,
			PostedBy:         o.PostedBy,
			CreatedAt:        o.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Hire handles POST /v1/jobs/:id/hire. At most one hire ever succeeds
// for a job; concurrent attempts lose with a 409.
//
// @Summary      Hire a handyman for a job
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Job id"
// @Param        body  body      hireRequest  true  "Hire decision"
// @Success      200   {object}  hireResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/jobs/{id}/hire [post]
func (h *OfferHandler) Hire(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req hireRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignmentID, err := h.service.HireHandyman(c.Request().Context(), ports.HireInput{
		JobID:       c.Param("id"),
		HandymanID:  req.HandymanID,
		ClientID:    userID,
		AgreedPrice: req.AgreedPrice,
		AgreedHours: req.AgreedHours,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, hireResponse{
		Success:      true,
		Message:      "handyman hired successfully",
		AssignmentID: assignmentID,
	})
}
