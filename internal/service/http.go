package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"empire-service/internal/engine"
	"empire-service/internal/repository/model"
)

// statusFor maps rejection codes onto HTTP statuses. The code itself is the
// contract; the status is a convenience for generic clients.
func statusFor(reason engine.Reason) int {
	switch reason {
	case engine.ReasonIncomplete:
		return http.StatusBadRequest
	case engine.ReasonCitizenNotFound, engine.ReasonMissingItem:
		return http.StatusNotFound
	case engine.ReasonInvalidStatus:
		return http.StatusConflict
	default:
		return http.StatusForbidden
	}
}

func respondError(c *gin.Context, err error) {
	if reason, ok := engine.ReasonOf(err); ok {
		c.JSON(statusFor(reason), gin.H{"ok": false, "reason": reason})
		return
	}
	if errors.Is(err, ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "reason": "conflict"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "reason": "internal"})
}

func newRouter(svc *EmpireService, development bool) *gin.Engine {
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/login", handleLogin(svc))
		v1.GET("/world", handleGetWorld(svc))
		v1.POST("/travel-requests", handleCreateTravelRequest(svc))
		v1.POST("/travel-requests/:id/validate", handleValidateTravelRequest(svc))
		v1.POST("/transfers", handleTransfer(svc))
		v1.PUT("/citizens", handleUpdateCitizen(svc))
		v1.POST("/day/advance", handleAdvanceDay(svc))
		v1.POST("/debts", handleCreateDebt(svc))
		v1.POST("/debts/:id/sign", handleDebtTransition(svc, (*EmpireService).SignDebt))
		v1.POST("/debts/:id/pay", handleDebtTransition(svc, (*EmpireService).PayDebt))
		v1.POST("/debts/:id/cancel", handleDebtTransition(svc, (*EmpireService).CancelDebt))
		v1.POST("/messages", handleSendMessage(svc))
		v1.POST("/items/give", handleGiveItem(svc))
		v1.POST("/countries/:id/roles", handleAddCustomRole(svc))
	}

	return router
}

func handleLogin(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name     string `json:"name" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		sess, err := svc.Login(c.Request.Context(), body.Name, body.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "session": sess})
	}
}

func handleGetWorld(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		world, err := svc.GetWorld(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, world)
	}
}

func handleCreateTravelRequest(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session     engine.Session `json:"session" binding:"required"`
			FromCountry string         `json:"fromCountry" binding:"required"`
			ToCountry   string         `json:"toCountry" binding:"required"`
			ToRegion    string         `json:"toRegion"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		req, err := svc.CreateTravelRequest(c.Request.Context(), body.Session, body.FromCountry, body.ToCountry, body.ToRegion)
		if err != nil {
			if reason, ok := engine.ReasonOf(err); ok {
				// The request was recorded REJECTED for audit; surface both.
				c.JSON(statusFor(reason), gin.H{"ok": false, "reason": reason, "request": req})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
	}
}

func handleValidateTravelRequest(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session `json:"session" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		result, err := svc.ValidateTravelRequest(c.Request.Context(), body.Session, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "request": result.Request, "moveCitizen": result.MoveCitizen})
	}
}

func handleTransfer(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session `json:"session" binding:"required"`
			Source  string         `json:"source" binding:"required"`
			Target  string         `json:"target" binding:"required"`
			Amount  int64          `json:"amount"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		source, err := engine.ParseAccountRef(body.Source)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}
		target, err := engine.ParseAccountRef(body.Target)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		entries, err := svc.Transfer(c.Request.Context(), body.Session, source, target, body.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "entries": entries})
	}
}

func handleUpdateCitizen(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session  engine.Session `json:"session" binding:"required"`
			Citizen  model.Citizen  `json:"citizen" binding:"required"`
			Password string         `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		citizen, err := svc.UpdateCitizen(c.Request.Context(), body.Session, body.Citizen, body.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "citizen": citizen})
	}
}

func handleAdvanceDay(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session `json:"session" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		calendar, err := svc.AdvanceDay(c.Request.Context(), body.Session)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "calendar": calendar})
	}
}

func handleCreateDebt(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session      engine.Session `json:"session" binding:"required"`
			DebtorId     string         `json:"debtorId" binding:"required"`
			Principal    int64          `json:"principal"`
			InterestRate int64          `json:"interestRate"`
			Reason       string         `json:"reason"`
			DueDate      string         `json:"dueDate"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		debt, err := svc.CreateDebt(c.Request.Context(), body.Session, body.DebtorId, body.Principal, body.InterestRate, body.Reason, body.DueDate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "debt": debt})
	}
}

func handleDebtTransition(svc *EmpireService, op func(*EmpireService, context.Context, engine.Session, string) (model.DebtContract, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session `json:"session" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		debt, err := op(svc, c.Request.Context(), body.Session, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "debt": debt})
	}
}

func handleSendMessage(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session `json:"session" binding:"required"`
			To      string         `json:"to" binding:"required"`
			Body    string         `json:"body" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		msg, err := svc.SendMessage(c.Request.Context(), body.Session, body.To, body.Body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": msg})
	}
}

func handleGiveItem(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session `json:"session" binding:"required"`
			From    string         `json:"from" binding:"required"`
			To      string         `json:"to" binding:"required"`
			ItemId  string         `json:"itemId" binding:"required"`
			Qty     int            `json:"qty"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		if err := svc.GiveItem(c.Request.Context(), body.Session, body.From, body.To, body.ItemId, body.Qty); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func handleAddCustomRole(svc *EmpireService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Session engine.Session   `json:"session" binding:"required"`
			Role    model.CustomRole `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "incomplete"})
			return
		}

		if err := svc.AddCustomRole(c.Request.Context(), body.Session, c.Param("id"), body.Role); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
