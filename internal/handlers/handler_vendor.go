package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// vendorHandler handles HTTP requests related to vendors and credit cards.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
	cardService   portssvc.CardSvcFacade
}

func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade, cardService portssvc.CardSvcFacade) {
	h := &vendorHandler{vendorService: vendorService, cardService: cardService}

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:vendorID", h.getVendor)
		vendors.POST("/:vendorID/deactivate", h.setVendorActive(false))
		vendors.POST("/:vendorID/activate", h.setVendorActive(true))
	}

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
		cards.GET("/:cardID", h.getCard)
		cards.POST("/:cardID/deactivate", h.setCardActive(false))
		cards.POST("/:cardID/activate", h.setCardActive(true))
	}
}

// createVendor godoc
// @Summary Create a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} dto.VendorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to create vendor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// listVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Param includeInactive query bool false "Include deactivated vendors"
// @Success 200 {array} dto.VendorResponse
// @Security BearerAuth
// @Router /vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListActiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	vendors, err := h.vendorService.ListVendors(c.Request.Context(), ownerID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list vendors")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVendorResponse(vendors))
}

// getVendor godoc
// @Summary Get a vendor
// @Tags vendors
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{vendorID} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), ownerID, c.Param("vendorID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve vendor")
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// setVendorActive godoc
// @Summary Activate or deactivate a vendor
// @Description Inactive vendors cannot receive new bills; existing bills are unaffected
// @Tags vendors
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /vendors/{vendorID}/deactivate [post]
// @Router /vendors/{vendorID}/activate [post]
func (h *vendorHandler) setVendorActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := ownerFromContext(c)
		if !ok {
			return
		}

		vendor, err := h.vendorService.SetVendorActive(c.Request.Context(), ownerID, c.Param("vendorID"), active)
		if err != nil {
			respondError(c, err, "Failed to update vendor")
			return
		}
		c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
	}
}

// createCard godoc
// @Summary Register a credit card
// @Tags cards
// @Accept json
// @Produce json
// @Param card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /cards [post]
func (h *vendorHandler) createCard(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to create card")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCardResponse(card))
}

// listCards godoc
// @Summary List credit cards
// @Tags cards
// @Produce json
// @Param includeInactive query bool false "Include deactivated cards"
// @Success 200 {array} dto.CardResponse
// @Security BearerAuth
// @Router /cards [get]
func (h *vendorHandler) listCards(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListActiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), ownerID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list cards")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCardResponse(cards))
}

// getCard godoc
// @Summary Get a credit card
// @Tags cards
// @Produce json
// @Param cardID path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{cardID} [get]
func (h *vendorHandler) getCard(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), ownerID, c.Param("cardID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

func (h *vendorHandler) setCardActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := ownerFromContext(c)
		if !ok {
			return
		}

		card, err := h.cardService.SetCardActive(c.Request.Context(), ownerID, c.Param("cardID"), active)
		if err != nil {
			respondError(c, err, "Failed to update card")
			return
		}
		c.JSON(http.StatusOK, dto.ToCardResponse(card))
	}
}
