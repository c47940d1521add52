package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/images"
	"github.com/flowblog/flowblog/internal/mailer"
	mysqlRepo "github.com/flowblog/flowblog/internal/repository/mysql"
	"github.com/flowblog/flowblog/internal/repository/mysql/model"
	redisRepo "github.com/flowblog/flowblog/internal/repository/redis"
	"github.com/flowblog/flowblog/internal/workers"

	"github.com/flowblog/flowblog/internal/rest"
	"github.com/flowblog/flowblog/internal/rest/middleware"
	"github.com/flowblog/flowblog/internal/usecase/comment"
	"github.com/flowblog/flowblog/internal/usecase/post"
	"github.com/flowblog/flowblog/internal/usecase/user"
)

const (
	defaultTimeout         = 30
	defaultAddress         = ":9090"
	defaultCacheDB         = 0
	defaultSessionTTLHours = 24 * 7
	defaultUploadsDir      = "./uploads"
	defaultCodeRPS         = 1.0
	defaultCodeBurst       = 3
	dbMaxRetry             = 10
	dbRetryIntervalSec     = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			var sqlDB *sql.DB
			sqlDB, err = db.DB()
			if err == nil {
				err = sqlDB.Ping()
				if err == nil {
					break
				}
				_ = sqlDB.Close()
			}
		}

		log.Printf("failed to connect to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	if err := db.AutoMigrate(&model.User{}, &model.BlogPost{}, &model.Comment{}); err != nil {
		log.Fatal("failed to migrate database schema:", err)
	}

	// prepare session store
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the redis connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to redis", err)
		return
	}

	// prepare gin
	route := gin.Default()
	websiteURL := os.Getenv("WEBSITE_URL")
	route.Use(middleware.CORS(websiteURL))
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	rest.RegisterCustomValidators()

	// Prepare Repository
	sessionTTLStr := os.Getenv("SESSION_TTL_HOURS")
	sessionTTLHours, err := strconv.Atoi(sessionTTLStr)
	if err != nil {
		log.Println("failed to parse session TTL, using default 7 days")
		sessionTTLHours = defaultSessionTTLHours
	}
	sessionTTL := time.Duration(sessionTTLHours) * time.Hour

	userRepo := mysqlRepo.NewUserRepository(db)
	postRepo := mysqlRepo.NewBlogPostRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(client, sessionTTL)
	verificationRepo := redisRepo.NewVerificationRepository(client)

	// prepare image storage and mail delivery
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = defaultUploadsDir
	}
	serverURL := os.Getenv("SERVER_URL")
	imageStore := images.NewStore(uploadsDir, serverURL)

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Println("failed to parse SMTP port, using default 587")
		smtpPort = 587
	}
	mailSender := mailer.New(
		os.Getenv("SMTP_HOST"),
		smtpPort,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_SENDER"),
	)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	revalidator := workers.NewRevalidateWorker(websiteURL, os.Getenv("POST_REVALIDATION_KEY"))
	go revalidator.Start(ctx)

	// Build service Layer
	postSvc := post.NewService(postRepo, userRepo, imageStore, revalidator)
	commentSvc := comment.NewService(commentRepo, postRepo, userRepo)
	userSvc := user.NewService(userRepo, sessionRepo, verificationRepo, mailSender, imageStore)

	postHandler := rest.NewBlogPostHandler(postSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	userHandler := rest.NewUserHandler(userSvc, sessionTTL)

	requiresAuth := middleware.RequiresAuth(sessionRepo)

	codeRPS := defaultCodeRPS
	if raw := os.Getenv("VERIFICATION_CODE_RPS"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			codeRPS = parsed
		}
	}
	codeRateLimit := middleware.RateLimit(codeRPS, defaultCodeBurst)

	// Register routes
	route.Static("/uploads", uploadsDir)

	route.POST("/users/signup", userHandler.SignUp)
	route.POST("/users/login", userHandler.Login)
	route.GET("/users/profile/:username", userHandler.Profile)
	route.POST("/users/verification-code", codeRateLimit,
		userHandler.RequestVerificationCode(domain.VerificationPurposeSignup))
	route.POST("/users/password-reset-code", codeRateLimit,
		userHandler.RequestVerificationCode(domain.VerificationPurposePasswordReset))
	route.POST("/users/reset-password", userHandler.ResetPassword)

	route.GET("/posts", postHandler.FetchPosts)
	route.GET("/posts/:blogPostId", postHandler.GetByID)
	route.GET("/slugs", postHandler.FetchSlugs)
	route.GET("/slugs/:slug", postHandler.GetBySlug)

	route.GET("/posts/:blogPostId/comments", commentHandler.FetchPostComments)
	route.GET("/comments/:commentId/replies", commentHandler.FetchReplies)

	authorized := route.Group("/")
	authorized.Use(requiresAuth)
	{
		authorized.POST("/users/logout", userHandler.Logout)
		authorized.GET("/users/me", userHandler.Me)
		authorized.PATCH("/users/me", userHandler.UpdateMe)

		authorized.POST("/posts", postHandler.Store)
		authorized.PATCH("/posts/:blogPostId", postHandler.Update)
		authorized.DELETE("/posts/:blogPostId", postHandler.Delete)

		authorized.POST("/posts/:blogPostId/comments", commentHandler.CreateComment)
		authorized.PATCH("/comments/:commentId", commentHandler.UpdateComment)
		authorized.DELETE("/comments/:commentId", commentHandler.DeleteComment)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
