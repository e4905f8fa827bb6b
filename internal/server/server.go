// Package server exposes the optimizer over HTTP as a small JSON API.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boardbuyer/boardbuyer/internal/engine"
	"github.com/boardbuyer/boardbuyer/internal/model"
	"github.com/boardbuyer/boardbuyer/internal/shopping"
)

// OptimizeRequest is the JSON body of POST /api/optimize.
type OptimizeRequest struct {
	Pieces        []model.Piece     `json:"pieces"`
	Boards        []model.BoardType `json:"boards"`
	AllowRotation *bool             `json:"allow_rotation,omitempty"` // default true
}

// OptimizeResponse carries the plan plus the flattened views consumers
// usually want, so clients do not have to re-derive them.
type OptimizeResponse struct {
	Boards        []model.CommittedBoard `json:"boards"`
	CuttingPlan   []model.Placement      `json:"cutting_plan"`
	BoardSolution []model.BoardType      `json:"board_solution"`
	ShoppingList  []shopping.LineItem    `json:"shopping_list"`
	TotalCost     float64                `json:"total_cost"`
}

// ErrorResponse is the JSON body of any non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter() *gin.Engine {
	r := gin.Default()
	r.GET("/healthz", handleHealth)
	r.POST("/api/optimize", handleOptimize)
	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleOptimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	settings := model.DefaultSettings()
	if req.AllowRotation != nil {
		settings.AllowRotation = *req.AllowRotation
	}

	opt := engine.New(settings)
	plan, err := opt.Optimize(req.Pieces, req.Boards)
	if err != nil {
		var infeasible *engine.InfeasibleError
		if errors.As(err, &infeasible) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, OptimizeResponse{
		Boards:        plan.Boards,
		CuttingPlan:   plan.CuttingPlan(),
		BoardSolution: plan.BoardSolution(),
		ShoppingList:  shopping.Aggregate(plan),
		TotalCost:     plan.TotalCost(),
	})
}
