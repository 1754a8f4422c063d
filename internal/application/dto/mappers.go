package dto

import "github.com/jhoicas/ecommerce-api/internal/domain/entity"

// ToUserResponse mapea la entidad a su salida pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    ImageDTO{PublicID: u.Avatar.PublicID, URL: u.Avatar.URL},
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses mapea un listado; nunca devuelve nil.
func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToProductResponse mapea la entidad a su salida pública.
func ToProductResponse(p *entity.Product) ProductResponse {
	images := make([]ImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ImageDTO{PublicID: img.PublicID, URL: img.URL})
	}
	reviews := make([]ReviewDTO, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, ReviewDTO{Name: r.Name, Rating: r.Rating, Comment: r.Comment})
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Rating:       p.Rating,
		Images:       images,
		Category:     p.Category,
		Stock:        p.Stock,
		NumOfReviews: p.NumOfReviews,
		Reviews:      reviews,
		User:         p.UserID,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductResponses mapea un listado; nunca devuelve nil.
func ToProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ToImages convierte las imágenes de entrada a la entidad.
func ToImages(in []ImageDTO) []entity.Image {
	out := make([]entity.Image, 0, len(in))
	for _, img := range in {
		out = append(out, entity.Image{PublicID: img.PublicID, URL: img.URL})
	}
	return out
}

// ToReviews convierte las reseñas de entrada a la entidad.
func ToReviews(in []ReviewDTO) []entity.Review {
	out := make([]entity.Review, 0, len(in))
	for _, r := range in {
		out = append(out, entity.Review{Name: r.Name, Rating: r.Rating, Comment: r.Comment})
	}
	return out
}
