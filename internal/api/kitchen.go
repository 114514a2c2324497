package api

import (
	"errors"
	"io"
	"net/http"

	"brigade/internal/database"
	"brigade/internal/kitchen"
	"brigade/internal/menu"
	"brigade/internal/models"
	"brigade/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// KitchenAPI represents the main API handler for the kitchen
type KitchenAPI struct {
	Router  *gin.Engine
	Kitchen *kitchen.StationManager
	Menu    *menu.Catalog
	Store   *database.Store
	Monitor *monitoring.Monitor
	Hub     *ReportHub
}

// Options carries the optional collaborators of the API.
type Options struct {
	JWTSecret string
	Store     *database.Store
	Monitor   *monitoring.Monitor
	// Report receives the batch report alongside websocket listeners.
	Report io.Writer
}

// NewKitchenAPI creates a new kitchen API instance
func NewKitchenAPI(m *kitchen.StationManager, catalog *menu.Catalog, opts Options) *KitchenAPI {
	router := gin.Default()

	if opts.Monitor == nil {
		opts.Monitor = monitoring.NewMonitor()
	}

	api := &KitchenAPI{
		Router:  router,
		Kitchen: m,
		Menu:    catalog,
		Store:   opts.Store,
		Monitor: opts.Monitor,
		Hub:     NewReportHub(),
	}

	if opts.Report != nil {
		m.SetReportWriter(io.MultiWriter(api.Hub, opts.Report))
	} else {
		m.SetReportWriter(api.Hub)
	}

	api.setupRoutes(opts.JWTSecret)
	return api
}

// setupRoutes configures all API endpoints
func (k *KitchenAPI) setupRoutes(secret string) {
	k.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "brigade kitchen is running"})
	})

	v1 := k.Router.Group("/api/v1")
	{
		v1.GET("/stations", k.ListStations)
		v1.GET("/stations/:name", k.GetStation)
		v1.GET("/backup", k.GetBackup)
		v1.GET("/queue", k.GetQueue)
		v1.GET("/menu", k.GetMenu)
		v1.GET("/dishes/:name/availability", k.GetAvailability)
		v1.GET("/metrics", k.GetMetrics)
		v1.GET("/ws", k.Hub.handleWebSocket)
	}

	write := v1.Group("")
	if secret != "" {
		write.Use(AuthMiddleware(secret))
	}
	{
		// Station management
		write.POST("/stations", k.CreateStation)
		write.DELETE("/stations/:name", k.DeleteStation)
		write.POST("/stations/merge", k.MergeStations)
		write.POST("/stations/:name/front", k.MoveStationToFront)
		write.POST("/stations/:name/dishes", k.AssignDish)
		write.POST("/stations/:name/ingredients", k.ReplenishStation)
		write.POST("/stations/:name/prepare", k.PrepareDish)
		write.POST("/stations/:name/backup-withdrawals", k.WithdrawFromBackup)

		// Backup inventory
		write.PUT("/backup", k.ReplaceBackup)
		write.POST("/backup", k.AddBackup)
		write.DELETE("/backup", k.ClearBackup)

		// Dish queue
		write.POST("/queue", k.EnqueueDish)
		write.DELETE("/queue", k.ClearQueue)
		write.POST("/queue/next", k.PrepareNext)
		write.POST("/queue/process", k.ProcessQueue)

		write.POST("/snapshot", k.SaveSnapshot)
	}
}

type stationView struct {
	Name        string              `json:"name"`
	Dishes      []string            `json:"dishes"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

func viewStation(s *kitchen.Station) stationView {
	v := stationView{Name: s.Name(), Dishes: []string{}, Ingredients: s.Ingredients()}
	for _, d := range s.Dishes() {
		v.Dishes = append(v.Dishes, d.Name())
	}
	if v.Ingredients == nil {
		v.Ingredients = []models.Ingredient{}
	}
	return v
}

// respondStation writes the current state of a station, or 404 when another
// request removed it in the meantime.
func (k *KitchenAPI) respondStation(c *gin.Context, code int, name string) {
	s := k.Kitchen.FindStation(name)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	c.JSON(code, viewStation(s))
}

// Station handlers

func (k *KitchenAPI) ListStations(c *gin.Context) {
	stations := k.Kitchen.Stations()
	out := make([]stationView, 0, len(stations))
	for _, s := range stations {
		out = append(out, viewStation(s))
	}
	c.JSON(http.StatusOK, out)
}

func (k *KitchenAPI) GetStation(c *gin.Context) {
	s := k.Kitchen.FindStation(c.Param("name"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, viewStation(s))
}

func (k *KitchenAPI) CreateStation(c *gin.Context) {
	var req struct {
		Name        string              `json:"name" binding:"required"`
		Dishes      []string            `json:"dishes"`
		Ingredients []models.Ingredient `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station := kitchen.NewStation(req.Name)
	for _, name := range req.Dishes {
		dish, err := k.Menu.Dish(name)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		station.AssignDish(dish)
	}
	for _, ing := range req.Ingredients {
		if err := models.ValidateIngredient(ing); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		station.Replenish(ing)
	}

	if !k.Kitchen.AddStation(station) {
		c.JSON(http.StatusConflict, gin.H{"error": "Station already exists"})
		return
	}
	k.respondStation(c, http.StatusCreated, req.Name)
}

func (k *KitchenAPI) DeleteStation(c *gin.Context) {
	if !k.Kitchen.RemoveStation(c.Param("name")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station removed"})
}

func (k *KitchenAPI) MoveStationToFront(c *gin.Context) {
	if !k.Kitchen.MoveStationToFront(c.Param("name")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	k.ListStations(c)
}

func (k *KitchenAPI) MergeStations(c *gin.Context) {
	var req struct {
		Into string `json:"into" binding:"required"`
		From string `json:"from" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Into == req.From {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot merge a station into itself"})
		return
	}
	if !k.Kitchen.MergeStations(req.Into, req.From) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	k.respondStation(c, http.StatusOK, req.Into)
}

func (k *KitchenAPI) AssignDish(c *gin.Context) {
	var req struct {
		Dish string           `json:"dish"`
		Spec *models.DishSpec `json:"spec"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, status, err := k.resolveDish(req.Dish, req.Spec)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	if k.Kitchen.FindStation(name) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	if !k.Kitchen.AssignDishToStation(name, dish) {
		c.JSON(http.StatusConflict, gin.H{"error": "Dish already assigned"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"station": name, "dish": dish.Name()})
}

func (k *KitchenAPI) ReplenishStation(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateStock(ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	if !k.Kitchen.ReplenishIngredientAtStation(name, ing) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	k.respondStation(c, http.StatusOK, name)
}

func (k *KitchenAPI) PrepareDish(c *gin.Context) {
	var req struct {
		Dish string `json:"dish" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	if k.Kitchen.FindStation(name) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	if !k.Kitchen.PrepareDishAtStation(name, req.Dish) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dish cannot be prepared at this station"})
		return
	}
	k.Monitor.Increment("dishes_prepared_direct", 1)
	c.JSON(http.StatusOK, gin.H{"station": name, "dish": req.Dish, "prepared": true})
}

func (k *KitchenAPI) WithdrawFromBackup(c *gin.Context) {
	var req struct {
		Ingredient string `json:"ingredient" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	if k.Kitchen.FindStation(name) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	if !k.Kitchen.ReplenishStationIngredientFromBackup(name, req.Ingredient, req.Quantity) {
		c.JSON(http.StatusConflict, gin.H{"error": "Backup inventory cannot cover the withdrawal"})
		return
	}
	station := k.Kitchen.FindStation(name)
	if station == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"station": viewStation(station),
		"backup":  k.Kitchen.BackupIngredients(),
	})
}

// Backup inventory handlers

func (k *KitchenAPI) GetBackup(c *gin.Context) {
	backup := k.Kitchen.BackupIngredients()
	if backup == nil {
		backup = []models.Ingredient{}
	}
	c.JSON(http.StatusOK, backup)
}

func (k *KitchenAPI) ReplaceBackup(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := c.ShouldBindJSON(&ingredients); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, ing := range ingredients {
		if err := validateStock(ing); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	k.Kitchen.AddBackupIngredients(ingredients)
	k.GetBackup(c)
}

func (k *KitchenAPI) AddBackup(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateStock(ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	k.Kitchen.AddBackupIngredient(ing)
	k.GetBackup(c)
}

func (k *KitchenAPI) ClearBackup(c *gin.Context) {
	k.Kitchen.ClearBackupIngredients()
	c.JSON(http.StatusOK, gin.H{"message": "Backup inventory cleared"})
}

// Dish queue handlers

func (k *KitchenAPI) GetQueue(c *gin.Context) {
	queue := k.Kitchen.DishQueue()
	names := make([]string, 0, len(queue))
	for _, d := range queue {
		names = append(names, d.Name())
	}
	c.JSON(http.StatusOK, gin.H{"dishes": names})
}

func (k *KitchenAPI) EnqueueDish(c *gin.Context) {
	var req struct {
		Dish    string                `json:"dish"`
		Spec    *models.DishSpec      `json:"spec"`
		Request models.DietaryRequest `json:"request"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, status, err := k.resolveDish(req.Dish, req.Spec)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if req.Request.IsEmpty() {
		k.Kitchen.AddDishToQueue(dish)
	} else {
		k.Kitchen.AddDishToQueueWithRequest(dish, req.Request)
	}
	c.JSON(http.StatusCreated, gin.H{"dish": dish.Name(), "queue_length": len(k.Kitchen.DishQueue())})
}

func (k *KitchenAPI) ClearQueue(c *gin.Context) {
	k.Kitchen.ClearDishQueue()
	c.JSON(http.StatusOK, gin.H{"message": "Queue cleared"})
}

func (k *KitchenAPI) PrepareNext(c *gin.Context) {
	if len(k.Kitchen.DishQueue()) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Queue is empty"})
		return
	}
	if !k.Kitchen.PrepareNextDish() {
		c.JSON(http.StatusConflict, gin.H{"error": "No station can prepare the next dish"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prepared": true, "queue_length": len(k.Kitchen.DishQueue())})
}

func (k *KitchenAPI) ProcessQueue(c *gin.Context) {
	summary := k.Kitchen.ProcessAllDishes()
	k.Monitor.RecordBatch(summary)
	c.JSON(http.StatusOK, summary)
}

// Lookup handlers

func (k *KitchenAPI) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dishes": k.Menu.Names()})
}

func (k *KitchenAPI) GetAvailability(c *gin.Context) {
	name := c.Param("name")
	c.JSON(http.StatusOK, gin.H{"dish": name, "available": k.Kitchen.CanCompleteOrder(name)})
}

func (k *KitchenAPI) GetMetrics(c *gin.Context) {
	metrics := k.Monitor.GetMetrics()
	metrics["report_listeners"] = k.Hub.Clients()
	c.JSON(http.StatusOK, metrics)
}

func (k *KitchenAPI) SaveSnapshot(c *gin.Context) {
	if k.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": database.ErrNoStore.Error()})
		return
	}
	var req struct {
		Label string `json:"label"`
	}
	// the body is optional
	_ = c.ShouldBindJSON(&req)

	snap, err := k.Store.SaveKitchen(k.Kitchen, req.Label)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": snap.ID, "label": snap.Label, "created_at": snap.CreatedAt})
}

// Private helper methods

// resolveDish builds a dish from an inline spec or looks a name up on the menu.
func (k *KitchenAPI) resolveDish(name string, spec *models.DishSpec) (models.Dish, int, error) {
	if spec != nil {
		dish, err := models.NewDish(*spec)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return dish, 0, nil
	}
	if name == "" {
		return nil, http.StatusBadRequest, errors.New("dish or spec is required")
	}
	dish, err := k.Menu.Dish(name)
	if err != nil {
		if errors.Is(err, menu.ErrDishNotFound) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusUnprocessableEntity, err
	}
	return dish, 0, nil
}

func validateStock(ing models.Ingredient) error {
	if err := models.ValidateIngredient(ing); err != nil {
		return err
	}
	if ing.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}
