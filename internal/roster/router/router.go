// Package router provides roster module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rizalarf/matchday/internal/config"
	"github.com/rizalarf/matchday/internal/proof"
	"github.com/rizalarf/matchday/internal/roster/handler"
	"github.com/rizalarf/matchday/internal/roster/repository"
	"github.com/rizalarf/matchday/internal/roster/service"
)

// RegisterRoutes registers roster module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.StorageConfig, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	proofs := proof.NewDiskStore(cfg.ProofDir, logger)
	svc := service.New(repo, proofs, logger, service.WithLenientLoad(cfg.LenientLoad))
	h := handler.New(svc, logger, cfg.MaxUploadBytes)

	r.POST("/matches", h.CreateMatch)
	r.PUT("/matches", h.ReplaceMatch)
	r.GET("/matches", h.ListMatches)
	r.DELETE("/matches", h.DeleteMatch)
	r.GET("/matches/roster", h.GetRoster)
	r.GET("/matches/export", h.ExportRoster)
	r.GET("/matches/proofs", h.ArchiveProofs)
	r.POST("/payments/status", h.UpdateStatus)
	r.POST("/payments/proof", h.UploadProof)
	r.GET("/payments/proof", h.GetProof)
}
