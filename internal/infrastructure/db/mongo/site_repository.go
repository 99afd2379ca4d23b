package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bizsites/website-builder/internal/core/domain"
)

const collectionSites = "sites"

// SiteRepository implements ports.SiteRepository using MongoDB. Slug
// uniqueness is enforced by a unique index, see EnsureIndexes.
type SiteRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewSiteRepository(db *mongo.Database) *SiteRepository {
	return &SiteRepository{
		col: db.Collection(collectionSites),
		ids: newSequence(db, collectionSites),
	}
}

// Create assigns the next numeric id and inserts the site document.
func (r *SiteRepository) Create(ctx context.Context, s *domain.Site) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}

	doc := *s
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSlug
		}
		return classify("insert site", err)
	}
	s.ID = id
	return nil
}

func (r *SiteRepository) FindByID(ctx context.Context, id int64) (*domain.Site, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SiteRepository) FindBySlug(ctx context.Context, slug string) (*domain.Site, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *SiteRepository) FindByEditToken(ctx context.Context, token string) (*domain.Site, error) {
	return r.findOne(ctx, bson.M{"edit_token": token})
}

// List returns all sites ordered by id.
func (r *SiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, classify("list sites", err)
	}
	defer cur.Close(ctx)

	sites := make([]*domain.Site, 0)
	for cur.Next(ctx) {
		var s domain.Site
		if err := cur.Decode(&s); err != nil {
			return nil, classify("decode site", err)
		}
		sites = append(sites, normalize(&s))
	}
	if err := cur.Err(); err != nil {
		return nil, classify("list sites", err)
	}
	return sites, nil
}

// Update applies the patch with a single $set and returns the new document.
func (r *SiteRepository) Update(ctx context.Context, id int64, patch domain.SitePatch) (*domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := patchDocument(patch)
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": id})
	}

	var s domain.Site
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrSiteNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateSlug
		}
		return nil, classify("update site", err)
	}
	return normalize(&s), nil
}

func (r *SiteRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the unique slug and edit token indexes.
func (r *SiteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "edit_token", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *SiteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Site
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, classify("find site", err)
	}
	return normalize(&s), nil
}

func patchDocument(p domain.SitePatch) bson.M {
	set := bson.M{}
	if p.BusinessName != nil {
		set["business_name"] = *p.BusinessName
	}
	if p.ContactInfo != nil {
		set["contact_info"] = *p.ContactInfo
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.LogoURL != nil {
		set["logo_url"] = *p.LogoURL
	}
	if p.Images != nil {
		set["images"] = p.Images
	}
	if p.SocialLinks != nil {
		set["social_links"] = p.SocialLinks
	}
	if p.ThemeColor != nil {
		set["theme_color"] = *p.ThemeColor
	}
	if p.Slug != nil {
		set["slug"] = *p.Slug
	}
	if p.InterestedInGiftCard != nil {
		set["interested_in_gift_card"] = *p.InterestedInGiftCard
	}
	return set
}

// normalize restores empty sequences that BSON decodes as nil and the UTC
// location the driver drops.
func normalize(s *domain.Site) *domain.Site {
	if s.Images == nil {
		s.Images = []string{}
	}
	if s.SocialLinks == nil {
		s.SocialLinks = []string{}
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s
}
