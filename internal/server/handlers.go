package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricecard/internal/models"
	"pricecard/internal/pricing"
	"pricecard/internal/receipt"
	"pricecard/internal/store"
)

// FieldUpdateRequest represents a single-field edit on an item or modifier
type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// RenameRequest represents a category title change
type RenameRequest struct {
	Title string `json:"title"`
}

// QuantityRequest represents a cart quantity adjustment
type QuantityRequest struct {
	Delta int `json:"delta"`
}

// handleGetMenu returns the current configuration and the default mode
func (s *Server) handleGetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"menu": s.config.Snapshot(),
		"mode": s.mode,
	})
}

// handleStats returns the runtime statistics snapshot
func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

// handleAddCategory appends a new empty category
func (s *Server) handleAddCategory(c *gin.Context) {
	cfg := s.config.AddCategory()
	s.afterMutation("add_category", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleRenameCategory replaces a category title; empty titles are allowed
func (s *Server) handleRenameCategory(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := s.config.RenameCategory(c.Param("catID"), req.Title)
	s.afterMutation("rename_category", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleRemoveCategory drops a category and its items. The destructive edit
// needs confirm=true; without it nothing changes and the client is told to
// ask the operator first.
func (s *Server) handleRemoveCategory(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusOK, gin.H{
			"menu":                 s.config.Snapshot(),
			"confirmationRequired": true,
		})
		return
	}
	cfg := s.config.RemoveCategory(c.Param("catID"))
	s.afterMutation("remove_category", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleAddItem appends a placeholder item to a category
func (s *Server) handleAddItem(c *gin.Context) {
	cfg := s.config.AddItem(c.Param("catID"))
	s.afterMutation("add_item", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleUpdateItem dispatches a single-field item edit. Price text is
// coerced, never rejected; an unknown field name is the only input this
// endpoint refuses.
func (s *Server) handleUpdateItem(c *gin.Context) {
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catID, itemID := c.Param("catID"), c.Param("itemID")
	var cfg *models.AppData
	switch req.Field {
	case "name":
		cfg = s.config.SetItemName(catID, itemID, req.Value)
	case "price":
		cfg = s.config.SetItemPrice(catID, itemID, store.ParsePrice(req.Value))
	case "kind":
		kind := models.ItemKind(req.Value)
		if kind != models.ItemKindToggle && kind != models.ItemKindCounter {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item kind: " + req.Value})
			return
		}
		cfg = s.config.SetItemKind(catID, itemID, kind)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item field: " + req.Field})
		return
	}

	s.afterMutation("update_item", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleRemoveItem drops one item from one category
func (s *Server) handleRemoveItem(c *gin.Context) {
	cfg := s.config.RemoveItem(c.Param("catID"), c.Param("itemID"))
	s.afterMutation("remove_item", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleAddModifier appends a placeholder modifier
func (s *Server) handleAddModifier(c *gin.Context) {
	cfg := s.config.AddModifier()
	s.afterMutation("add_modifier", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleUpdateModifier dispatches a single-field modifier edit
func (s *Server) handleUpdateModifier(c *gin.Context) {
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modID := c.Param("modID")
	var cfg *models.AppData
	switch req.Field {
	case "name":
		cfg = s.config.SetModifierName(modID, req.Value)
	case "percent":
		cfg = s.config.SetModifierPercent(modID, store.ParsePercent(req.Value))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown modifier field: " + req.Field})
		return
	}

	s.afterMutation("update_modifier", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleRemoveModifier drops a modifier
func (s *Server) handleRemoveModifier(c *gin.Context) {
	cfg := s.config.RemoveModifier(c.Param("modID"))
	s.afterMutation("remove_modifier", cfg)
	c.JSON(http.StatusOK, gin.H{"menu": cfg})
}

// handleSetQuantity adjusts the caller's cart for one item. The item's kind
// comes from the configuration; unknown items are a silent no-op, matching
// the inert-id rule.
func (s *Server) handleSetQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, sel := s.session(c)
	itemID := c.Param("itemID")

	cfg := s.config.Snapshot()
	for _, cat := range cfg.Categories {
		if item, ok := cat.FindItem(itemID); ok {
			sel.SetQuantity(itemID, item.Kind, req.Delta)
			break
		}
	}

	s.hub.PushQuote(id)
	s.respondQuote(c, sel)
}

// handleToggleModifier flips one modifier in the caller's active set
func (s *Server) handleToggleModifier(c *gin.Context) {
	id, sel := s.session(c)
	sel.ToggleModifier(c.Param("modID"))

	s.hub.PushQuote(id)
	s.respondQuote(c, sel)
}

// handleClearCart resets the caller's selection
func (s *Server) handleClearCart(c *gin.Context) {
	_, sel := s.session(c)
	sel.Clear()
	s.respondQuote(c, sel)
}

// handleQuote prices the caller's current selection
func (s *Server) handleQuote(c *gin.Context) {
	_, sel := s.session(c)
	s.respondQuote(c, sel)
}

// handleReceipt renders the caller's receipt text
func (s *Server) handleReceipt(c *gin.Context) {
	_, sel := s.session(c)
	text := receipt.Format(s.config.Snapshot(), sel.Cart(), sel.ActiveModifiers())
	c.JSON(http.StatusOK, gin.H{"receipt": text})
}

// handleCopyReceipt copies the caller's receipt to the clipboard
func (s *Server) handleCopyReceipt(c *gin.Context) {
	_, sel := s.session(c)
	text := receipt.Format(s.config.Snapshot(), sel.Cart(), sel.ActiveModifiers())
	s.copyText(c, text)
}

// handleShare returns the share link, or the sharing-disabled warning when
// the environment cannot carry a fragment
func (s *Server) handleShare(c *gin.Context) {
	token, ok := s.ctrl.ShareToken(s.config.Snapshot())
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
			"warning":   "sharing is unavailable in this environment",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"token":     token,
		"url":       s.shareBase + "#" + token,
	})
}

// handleCopyShare copies the share link to the clipboard
func (s *Server) handleCopyShare(c *gin.Context) {
	token, ok := s.ctrl.ShareToken(s.config.Snapshot())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"copied": false,
			"warning": "sharing is unavailable in this environment"})
		return
	}
	s.copyText(c, s.shareBase+"#"+token)
}

// handleCopied reports whether the transient acknowledgment is still active
func (s *Server) handleCopied(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"active": s.copyFlag.Active()})
}

func (s *Server) copyText(c *gin.Context, text string) {
	if err := s.clipboard.Copy(text); err != nil {
		// Fire-and-forget: log and report, state is unchanged.
		s.log.WithError(err).Warn("clipboard copy failed")
		c.JSON(http.StatusOK, gin.H{"copied": false})
		return
	}
	s.copyFlag.Mark()
	s.monitor.Increment("copies")
	c.JSON(http.StatusOK, gin.H{"copied": true})
}

func (s *Server) respondQuote(c *gin.Context, sel *store.SelectionStore) {
	quote := pricing.Calculate(s.config.Snapshot(), sel.Cart(), sel.ActiveModifiers())
	s.monitor.RecordQuote(quote.Total)
	s.collector.RecordQuote(quote.Total)
	c.JSON(http.StatusOK, quote)
}
