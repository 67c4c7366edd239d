// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"teamdex/internal/models"
	"teamdex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CastVote handles POST /api/:kind/:commentId/vote/:direction (protected)
// @Summary Vote on a comment
// @Description One vote per user per comment; retract before switching direction
// @Tags votes
// @Produce json
// @Param kind path string true "team or pokemon"
// @Param commentId path int true "Comment ID"
// @Param direction path string true "up or down"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /{kind}/{commentId}/vote/{direction} [post]
func (s *Server) CastVote(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	kind, err := s.parseKind(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var isUpvote bool
	switch c.Params("direction") {
	case "up":
		isUpvote = true
	case "down":
		isUpvote = false
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Vote direction must be up or down"))
	}

	comment, err := s.voteService.CastVote(ctx, service.CastVoteInput{
		UserID:     userID,
		CommentID:  commentID,
		TargetKind: kind,
		IsUpvote:   isUpvote,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// RetractVote handles DELETE /api/:kind/:commentId/vote (protected)
// @Summary Retract a vote
// @Tags votes
// @Param kind path string true "team or pokemon"
// @Param commentId path int true "Comment ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /{kind}/{commentId}/vote [delete]
func (s *Server) RetractVote(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	kind, err := s.parseKind(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	err = s.voteService.RetractVote(ctx, service.RetractVoteInput{
		UserID:     userID,
		CommentID:  commentID,
		TargetKind: kind,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
