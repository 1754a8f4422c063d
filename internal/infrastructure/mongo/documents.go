package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

type userDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Name                string             `bson:"name"`
	Email               string             `bson:"email"`
	Password            string             `bson:"password"`
	Role                string             `bson:"role"`
	Avatar              entity.Image       `bson:"avatar"`
	ResetPasswordToken  *string            `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time         `bson:"resetPasswordExpire,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:                  d.ID.Hex(),
		Name:                d.Name,
		Email:               d.Email,
		PasswordHash:        d.Password,
		Role:                d.Role,
		Avatar:              d.Avatar,
		ResetPasswordToken:  d.ResetPasswordToken,
		ResetPasswordExpire: d.ResetPasswordExpire,
		CreatedAt:           d.CreatedAt,
	}
}

type productDocument struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	Name         string              `bson:"name"`
	Description  string              `bson:"description"`
	Price        float64             `bson:"price"`
	Rating       float64             `bson:"rating"`
	Images       []entity.Image      `bson:"images"`
	Category     string              `bson:"category"`
	Stock        int                 `bson:"stock"`
	NumOfReviews int                 `bson:"numOfReviews"`
	Reviews      []entity.Review     `bson:"reviews"`
	User         *primitive.ObjectID `bson:"user,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt"`
}

func newProductDocument(p *entity.Product) (*productDocument, error) {
	doc := &productDocument{
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		Rating:       p.Rating,
		Images:       p.Images,
		Category:     p.Category,
		Stock:        p.Stock,
		NumOfReviews: p.NumOfReviews,
		Reviews:      p.Reviews,
		CreatedAt:    p.CreatedAt,
	}
	if doc.Images == nil {
		doc.Images = []entity.Image{}
	}
	if doc.Reviews == nil {
		doc.Reviews = []entity.Review{}
	}
	if p.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(p.UserID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		doc.User = &uid
	}
	return doc, nil
}

func (d *productDocument) toEntity() *entity.Product {
	p := &entity.Product{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Description:  d.Description,
		Price:        decimal.NewFromFloat(d.Price),
		Rating:       d.Rating,
		Images:       d.Images,
		Category:     d.Category,
		Stock:        d.Stock,
		NumOfReviews: d.NumOfReviews,
		Reviews:      d.Reviews,
		CreatedAt:    d.CreatedAt,
	}
	if d.User != nil {
		p.UserID = d.User.Hex()
	}
	return p
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}
