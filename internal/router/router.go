package router

import (
	"context"
	"net/http"
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/auth"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/controllers"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/middleware"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/schemas"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(config.LevelFromEnv())
}

// Options carries what the router needs from the outside world.
type Options struct {
	DB             *gorm.DB
	Provider       auth.IdentityProvider
	AllowedOrigins []string
	RequestTimeout time.Duration
	ServiceName    string
}

// SetupRouter builds the gin engine with middleware, services and routes.
func SetupRouter(opts Options) *gin.Engine {
	if err := schemas.RegisterValidators(); err != nil {
		log.WithError(err).Panic("Failed to register request validators")
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.Timeout(opts.RequestTimeout))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	userService := services.NewUserService(opts.DB)
	handlers := Handlers{
		Users:             controllers.NewUserController(userService),
		Ingredients:       controllers.NewIngredientController(services.NewIngredientService(opts.DB)),
		Recipes:           controllers.NewRecipeController(services.NewRecipeService(opts.DB)),
		MealPlans:         controllers.NewMealPlanController(services.NewMealPlanService(opts.DB), userService),
		WeeklyAssignments: controllers.NewWeeklyAssignmentController(services.NewWeeklyAssignmentService(opts.DB)),
	}

	router.GET("/health", healthCheckHandler(opts.DB, opts.ServiceName))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	setupRoutes(router.Group("/api/v1"), handlers,
		middleware.BearerAuth(opts.Provider, userService),
		middleware.OptionalBearerAuth(opts.Provider, userService))

	return router
}

// Handlers groups the controllers mounted under /api/v1.
type Handlers struct {
	Users             controllers.UserController
	Ingredients       controllers.IngredientController
	Recipes           controllers.RecipeController
	MealPlans         controllers.MealPlanController
	WeeklyAssignments controllers.WeeklyAssignmentController
}

func setupRoutes(v1 *gin.RouterGroup, h Handlers, requireAuth, optionalAuth gin.HandlerFunc) {
	users := v1.Group("/users", requireAuth)
	{
		users.POST("/", h.Users.CreateUser)
		users.GET("/", h.Users.GetAllUsers)
		users.GET("/me", h.Users.GetMe)
		users.PUT("/me", h.Users.UpdateMe)
		users.GET("/me/meal-plans/", h.MealPlans.GetMyMealPlans)
		users.GET("/me/weekly-assignments/", h.WeeklyAssignments.GetMyWeeklyAssignments)
		users.GET("/:id", h.Users.GetUserByID)
		users.PUT("/:id", middleware.RequireSelf("id"), h.Users.UpdateUser)
		users.DELETE("/:id", middleware.RequireSelf("id"), h.Users.DeleteUser)
		users.GET("/:id/meal-plans/", h.MealPlans.GetUserMealPlans)
	}

	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("/", h.Ingredients.GetAllIngredients)
		ingredients.GET("/:id", h.Ingredients.GetIngredientByID)
		ingredients.POST("/", requireAuth, h.Ingredients.CreateIngredient)
		ingredients.PUT("/:id", requireAuth, h.Ingredients.UpdateIngredient)
		ingredients.DELETE("/:id", requireAuth, h.Ingredients.DeleteIngredient)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.GET("/", optionalAuth, h.Recipes.GetAllRecipes)
		recipes.GET("/:id", optionalAuth, h.Recipes.GetRecipeByID)
		recipes.POST("/", requireAuth, h.Recipes.CreateRecipe)
		recipes.PUT("/:id", requireAuth, h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, h.Recipes.DeleteRecipe)
	}

	mealPlans := v1.Group("/meal-plans", requireAuth)
	{
		mealPlans.POST("/", h.MealPlans.CreateMealPlan)
		mealPlans.GET("/", h.MealPlans.GetAllMealPlans)
		mealPlans.GET("/:id", h.MealPlans.GetMealPlanByID)
		mealPlans.PUT("/:id", h.MealPlans.UpdateMealPlan)
		mealPlans.DELETE("/:id", h.MealPlans.DeleteMealPlan)
	}

	weekly := v1.Group("/weekly-assignments", requireAuth)
	{
		weekly.POST("/", h.WeeklyAssignments.UpsertWeeklyAssignment)
		weekly.GET("/:id", h.WeeklyAssignments.GetWeeklyAssignmentByID)
		weekly.DELETE("/:id", h.WeeklyAssignments.DeleteWeeklyAssignment)
	}
}

// healthCheckHandler godoc
// @Summary Health check
// @Description Check if the service is running and the database answers
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(db *gorm.DB, service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if err := ping(c.Request.Context(), db); err != nil {
			log.WithError(err).Error("Health check database ping failed")
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   service,
		})
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
