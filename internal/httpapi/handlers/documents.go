package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"collabdelta/internal/collab"
)

type DocumentHandlers struct {
	svc collab.Service
}

func NewDocumentHandlers(svc collab.Service) *DocumentHandlers {
	return &DocumentHandlers{svc: svc}
}

type createDocumentReq struct {
	Title string `json:"title" binding:"required"`
}

func (h *DocumentHandlers) CreateDocument(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}
	ownerID, ok := userID.(uint64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user id format"})
		return
	}

	var req createDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if err := h.svc.CreateDocument(c.Request.Context(), ownerID, req.Title); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	docID, err := h.svc.GetDocumentID(c.Request.Context(), req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"docId": docID, "ownerId": ownerID, "title": req.Title})
}

func (h *DocumentHandlers) GetDocument(c *gin.Context) {
	docTitle := c.Param("title")
	if docTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document title missing"})
		return
	}
	docID, err := h.svc.GetDocumentID(c.Request.Context(), docTitle)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	content, revision, err := h.svc.LoadDocumentContent(c.Request.Context(), docID)
	if err != nil {
		// No edits have landed yet; that's a fresh, not a missing, document.
		c.JSON(http.StatusOK, gin.H{"docId": docID, "content": "", "revision": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"docId": docID, "content": content, "revision": revision})
}
