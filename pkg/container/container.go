package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/config"
	infraCache "wrestling-admin/internal/infrastructure/cache"
	"wrestling-admin/internal/infrastructure/database"
	"wrestling-admin/internal/infrastructure/storage"
	"wrestling-admin/internal/shared/capability"
	"wrestling-admin/pkg/cache"

	assocRepo "wrestling-admin/internal/domains/association/repository"
	assocService "wrestling-admin/internal/domains/association/service"
	entityHandler "wrestling-admin/internal/domains/entity/handler"
	entityModel "wrestling-admin/internal/domains/entity/model"
	entityRepo "wrestling-admin/internal/domains/entity/repository"
	entityService "wrestling-admin/internal/domains/entity/service"
	imageHandler "wrestling-admin/internal/domains/image/handler"
	imageService "wrestling-admin/internal/domains/image/service"
	wrestlerHandler "wrestling-admin/internal/domains/wrestler/handler"
	wrestlerService "wrestling-admin/internal/domains/wrestler/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự khởi tạo: Config → Infrastructure → Capabilities → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config       *config.Config
	DB           *database.PostgresDB
	Redis        *infraCache.RedisClient // nil nếu Redis không khả dụng
	Cache        cache.Cache             // luôn khác nil, fallback Noop
	Storage      *storage.MinIOStorage   // nil nếu MinIO không khả dụng
	Processor    *storage.ImageProcessor
	Capabilities *capability.Set

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	EntityRepo      entityRepo.RepositoryInterface
	AssociationRepo assocRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AssociationService assocService.ServiceInterface
	ImageService       imageService.ServiceInterface
	EntityService      entityService.ServiceInterface
	WrestlerService    wrestlerService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	EntityHandler   *entityHandler.EntityHandler
	WrestlerHandler *wrestlerHandler.WrestlerHandler
	ImageHandler    *imageHandler.ImageHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Chỉ Postgres là critical; Redis và MinIO lỗi thì chạy degraded.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI Container...")
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: INITIALIZE CACHE (non-critical)
	// ========================================
	c.initCache()

	// ========================================
	// STEP 4: CAPABILITIES + STORAGE
	// ========================================
	c.Capabilities = capability.New(entityModel.ImageTables(), cfg.Schema.ImageUploads)
	c.initStorage()
	c.probeCapabilities()

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Interface("capabilities", c.Capabilities.Snapshot()).Msg("DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	return nil
}

// initCache: Redis failure không critical, entity store chạy không cache
func (c *Container) initCache() {
	c.Cache = cache.Noop{}

	client := infraCache.NewRedisClient(c.Config.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), caching disabled")
		_ = client.Close()
		return
	}

	c.Redis = client
	c.Cache = infraCache.NewRedisCache(client.Client, infraCache.DefaultPrefix)
}

// initStorage: MinIO failure tắt image uploads cho cả session
func (c *Container) initStorage() {
	cfg := c.Config
	c.Processor = storage.NewImageProcessor(cfg.Image.MaxBytes, cfg.Image.MaxDimension, cfg.Image.AllowedTypes)

	if !c.Capabilities.ImageUploads() {
		log.Info().Msg("Image uploads disabled by config")
		return
	}

	st, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("MinIO client init failed (non-critical), image uploads disabled")
		c.Capabilities.DisableImageUploads()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := st.EnsureBucket(ctx)
	if err != nil {
		log.Warn().Err(err).Str("bucket", st.Bucket()).Msg("MinIO bucket unavailable (non-critical), image uploads disabled")
		c.Capabilities.DisableImageUploads()
		return
	}
	if created {
		log.Info().Str("bucket", st.Bucket()).Msg("MinIO bucket created")
	}
	c.Storage = st
}

// probeCapabilities: SCHEMA_PROBE=false → tin rằng mọi bảng đều có image_url,
// fallback phản ứng ở entity service vẫn bắt được trường hợp sai
func (c *Container) probeCapabilities() {
	if !c.Config.Schema.Probe {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.ProbeCapabilities(ctx, c.DB.Pool, c.Capabilities); err != nil {
		log.Warn().Err(err).Msg("Schema probe failed, relying on runtime fallback")
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.EntityRepo = entityRepo.NewCachedRepository(
		entityRepo.NewPostgresRepository(pool, c.Capabilities),
		c.Cache,
		c.Config.Cache.TTL,
	)
	c.AssociationRepo = assocRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// batch lookup đi qua fallback image_url giống entity service
	c.AssociationService = assocService.NewAssociationService(
		c.AssociationRepo,
		entityService.NewReader(c.EntityRepo, c.Capabilities),
	)

	// interface nil thật sự khi không có storage, tránh typed-nil
	var objects imageService.ObjectStorage
	if c.Storage != nil {
		objects = c.Storage
	}
	c.ImageService = imageService.NewImageService(objects, c.Processor, c.Capabilities)

	c.EntityService = entityService.NewEntityService(
		c.EntityRepo,
		c.Capabilities,
		c.AssociationService,
		c.ImageService,
	)
	c.WrestlerService = wrestlerService.NewWrestlerService(c.EntityService, c.AssociationService)
}

func (c *Container) initHandlers() {
	c.EntityHandler = entityHandler.NewEntityHandler(c.EntityService, c.AssociationService)
	c.WrestlerHandler = wrestlerHandler.NewWrestlerHandler(c.WrestlerService)
	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService, c.Config.Image.MaxBytes)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
