package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophterms/internal/api"
	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
	"github.com/dmitrijs2005/gophterms/internal/server/services"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

func (s *HTTPServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, api.PingResponse{Status: api.StatusOK})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req api.RegisterRequest
	if !s.bind(c, &req) {
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.Username, req.Salt, req.Verifier)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", u.UserName, "user_id", u.ID)
	c.JSON(http.StatusCreated, gin.H{"id": u.ID})
}

func (s *HTTPServer) getSalt(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		s.writeError(c, fmt.Errorf("%w: username is required", common.ErrValidation))
		return
	}

	salt, err := s.users.GetSalt(c.Request.Context(), username)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.SaltResponse{Salt: salt})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.LoginRequest
	if !s.bind(c, &req) {
		return
	}

	tokens, err := s.users.Login(c.Request.Context(), req.Username, req.Verifier)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(tokens))
}

func (s *HTTPServer) refresh(c *gin.Context) {
	var req api.RefreshRequest
	if !s.bind(c, &req) {
		return
	}

	tokens, err := s.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(tokens))
}

func (s *HTTPServer) me(c *gin.Context) {
	p, err := s.users.Profile(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	acc := make(terms.Acceptances, len(p.Acceptances))
	for _, a := range p.Acceptances {
		at := a.AcceptedAt
		acc[a.CollectionID] = terms.Record{Hash: a.TermsHash, Accepted: &at}
	}

	c.JSON(http.StatusOK, api.Profile{
		ID:       p.User.ID,
		Username: p.User.UserName,
		Terms:    terms.Profile{Collection: acc},
	})
}

func (s *HTTPServer) listCollections(c *gin.Context) {
	list, err := s.collections.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]api.Collection, 0, len(list))
	for i := range list {
		out = append(out, collectionResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) getCollection(c *gin.Context) {
	id, ok := s.collectionID(c)
	if !ok {
		return
	}

	col, err := s.collections.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, collectionResponse(col))
}

func (s *HTTPServer) createCollection(c *gin.Context) {
	var req api.CreateCollectionRequest
	if !s.bind(c, &req) {
		return
	}

	col, err := s.collections.Create(c.Request.Context(), userID(c), req.Name, req.Description, req.Terms)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collectionResponse(col))
}

func (s *HTTPServer) updateTerms(c *gin.Context) {
	id, ok := s.collectionID(c)
	if !ok {
		return
	}

	var req api.UpdateTermsRequest
	if !s.bind(c, &req) {
		return
	}

	col, err := s.collections.UpdateTerms(c.Request.Context(), userID(c), id, req.Terms)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Terms updated", "collection_id", col.ID, "terms_hash", terms.Hash(col.Terms))
	c.JSON(http.StatusOK, collectionResponse(col))
}

func (s *HTTPServer) acceptTerms(c *gin.Context) {
	id, ok := s.collectionID(c)
	if !ok {
		return
	}

	var req api.AcceptTermsRequest
	if !s.bind(c, &req) {
		return
	}
	if req.TermsHash == "" {
		s.writeError(c, fmt.Errorf("%w: termsHash is required", common.ErrValidation))
		return
	}

	a, err := s.terms.Accept(c.Request.Context(), userID(c), id, req.TermsHash)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Terms accepted", "collection_id", a.CollectionID, "user_id", a.UserID)
	c.JSON(http.StatusOK, gin.H{})
}

// collectionID returns the :id path parameter. Collection ids are UUIDs, so
// anything else is answered with 404.
func (s *HTTPServer) collectionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		s.writeError(c, common.ErrorNotFound)
		return "", false
	}
	return id, true
}

// bind decodes the JSON body into dst, answering 400 on failure.
func (s *HTTPServer) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return false
	}
	return true
}

func tokenResponse(p *services.TokenPair) api.TokenResponse {
	return api.TokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

func collectionResponse(c *models.Collection) api.Collection {
	out := api.Collection{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Terms:       c.Terms,
		CreatorID:   c.CreatorID,
		CreatedAt:   c.CreatedAt,
	}
	if terms.HasTerms(c.Terms) {
		out.TermsHash = terms.Hash(c.Terms)
	}
	return out
}
