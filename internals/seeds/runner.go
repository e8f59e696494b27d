package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	userModel "growlog_backend/internals/features/users/user/model"
	helper "growlog_backend/internals/helpers"
)

// RunAllSeeds loads demo data for local development. Idempotent: rows are
// matched on their natural keys before insert.
func RunAllSeeds(db *gorm.DB) {
	admin := seedAdmin(db)
	if admin == nil {
		return
	}
	seedGenetics(db, admin)
}

func seedAdmin(db *gorm.DB) *userModel.UserModel {
	hash, err := bcrypt.GenerateFromPassword([]byte("growlog-admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] seed admin hash: %v", err)
		return nil
	}

	admin := userModel.UserModel{
		UserName: "admin",
		Email:    "admin@growlog.local",
		Password: string(hash),
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Printf("[ERROR] seed admin: %v", err)
		return nil
	}
	return &admin
}

func seedGenetics(db *gorm.DB, admin *userModel.UserModel) {
	starters := []gModel.GeneticModel{
		{GeneticName: "Blue Dream", GeneticType: gModel.GeneticTypeHybrid},
		{GeneticName: "Northern Lights", GeneticType: gModel.GeneticTypeIndica},
		{GeneticName: "Durban Poison", GeneticType: gModel.GeneticTypeSativa},
	}
	for i := range starters {
		g := &starters[i]
		g.GeneticSlug = helper.GenerateSlug(g.GeneticName)
		g.GeneticCreatedBy = admin.ID
		if err := db.Where("genetic_slug = ?", g.GeneticSlug).FirstOrCreate(g).Error; err != nil {
			log.Printf("[ERROR] seed genetic %q: %v", g.GeneticName, err)
		}
	}
	log.Println("[INFO] seed data loaded")
}
