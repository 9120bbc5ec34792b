package router

import (
	"github.com/pinshelf/pinshelf-api/internal/application"
	"github.com/pinshelf/pinshelf-api/internal/container"
	"github.com/pinshelf/pinshelf-api/internal/infrastructure/mongodb"
	handlers "github.com/pinshelf/pinshelf-api/internal/interface/http"
	"github.com/pinshelf/pinshelf-api/internal/router/modules"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
)

// InitModules constructs every feature module from the container singletons
// and registers it. Called once during startup, after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()
	jwt := container.GetJWT()

	users := mongodb.NewUserRepository(db)
	items := mongodb.NewItemRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	posts := mongodb.NewPostRepository(db)
	images := mongodb.NewImageRepository(db)
	otps := mongodb.NewOtpRepository(db)
	favorites := mongodb.NewFavoriteRepository(db)

	// A typed-nil *RabbitPublisher must not end up in the interface field;
	// the services check Pub against nil to decide whether to dispatch.
	var pub application.Publisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	authSvc := &application.AuthService{
		Users:       users,
		Otps:        otps,
		JWT:         jwt,
		Redis:       container.GetRedis(),
		Pub:         pub,
		Logger:      logger,
		OtpTTL:      cfg.OtpTTL,
		SessionTTL:  cfg.SessionTTL,
		MailEnabled: cfg.MailSendEnabled,
	}
	userSvc := application.NewUserService(users, logger)
	itemSvc := application.NewItemService(items, favorites, container.GetES(), cfg.ESItemsIndex, logger)
	categorySvc := application.NewCategoryService(categories, logger)
	postSvc := application.NewPostService(posts, logger)

	var blobs application.BlobStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		blobs = helpers.NewGCSBlobStore(gcs, cfg.GCSBucket)
	}
	imageSvc := application.NewImageService(images, blobs, "gcs", logger)
	searchSvc := application.NewSearchService(cfg.SearchServiceURL, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewItemModule(handlers.NewItemHandler(itemSvc, logger), jwt))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc, logger), jwt))
	r.Add(modules.NewImageModule(handlers.NewImageHandler(imageSvc, logger), jwt))
	r.Add(modules.NewSearchModule(handlers.NewSearchHandler(searchSvc, logger), jwt))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
