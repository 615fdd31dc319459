package migration

import (
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	cartdomain "github.com/tedxmekong/stagehub/internal/cart/domain"
	"github.com/tedxmekong/stagehub/internal/config"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	eventdomain "github.com/tedxmekong/stagehub/internal/event/domain"
	learningdomain "github.com/tedxmekong/stagehub/internal/learning/domain"
	mentordomain "github.com/tedxmekong/stagehub/internal/mentor/domain"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	orderdomain "github.com/tedxmekong/stagehub/internal/order/domain"
	organizationdomain "github.com/tedxmekong/stagehub/internal/organization/domain"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	purchasedomain "github.com/tedxmekong/stagehub/internal/purchase/domain"
	"github.com/tedxmekong/stagehub/internal/seed"
	ticketdomain "github.com/tedxmekong/stagehub/internal/ticket/domain"
	workspacedomain "github.com/tedxmekong/stagehub/internal/workspace/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres installs (sqlite dev mode) derive the schema
			// from the models instead of the SQL files.
			if err := autoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.Bootstrap.EnsureDefaultAdmin {
			return seed.EnsureDefaultAdmin(conn)
		}
		return nil
	}),
)

func autoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&authdomain.EmailVerification{},
		&organizationdomain.Organization{},
		&organizationdomain.Member{},
		&offeringdomain.Offering{},
		&eventdomain.Event{},
		&productdomain.Product{},
		&cartdomain.CartItem{},
		&discountdomain.DiscountCode{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&ticketdomain.EventTicket{},
		&purchasedomain.ServicePurchase{},
		&workspacedomain.Workspace{},
		&workspacedomain.Page{},
		&workspacedomain.Task{},
		&workspacedomain.File{},
		&mentordomain.Slot{},
		&mentordomain.Session{},
		&learningdomain.Progress{},
		&notificationdomain.Notification{},
		&notificationdomain.CalendarEvent{},
	)
}
