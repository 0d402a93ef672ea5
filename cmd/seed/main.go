// Command seed loads demo data from a YAML fixture file: owner accounts,
// their businesses, catalog products and employees, and the matching
// directory listings. Intended for local development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"shopwise_backend/internal/auth/password"
	authrepo "shopwise_backend/internal/auth/repository"
	businessrepo "shopwise_backend/internal/business/repository"
	catalogrepo "shopwise_backend/internal/catalog/repository"
	discoveryrepo "shopwise_backend/internal/discovery/repository"
	workforcerepo "shopwise_backend/internal/workforce/repository"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/db"
	"shopwise_backend/platform/logger"
)

type fixtures struct {
	Businesses []businessFixture `yaml:"businesses"`
}

type businessFixture struct {
	Owner struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		FullName string `yaml:"fullName"`
	} `yaml:"owner"`
	Name        string  `yaml:"name"`
	About       string  `yaml:"about"`
	WebsiteLink string  `yaml:"websiteLink"`
	Phone       string  `yaml:"phone"`
	Province    string  `yaml:"province"`
	District    string  `yaml:"district"`
	Sector      string  `yaml:"sector"`
	Cell        string  `yaml:"cell"`
	Village     string  `yaml:"village"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`

	Products []struct {
		Title         string `yaml:"title"`
		Category      string `yaml:"category"`
		Description   string `yaml:"description"`
		PriceCents    int64  `yaml:"priceCents"`
		StockQuantity int    `yaml:"stockQuantity"`
	} `yaml:"products"`

	Employees []struct {
		FullName    string `yaml:"fullName"`
		RoleTitle   string `yaml:"roleTitle"`
		SalaryCents int64  `yaml:"salaryCents"`
		HiredAt     string `yaml:"hiredAt"`
	} `yaml:"employees"`
}

func main() {
	fixturePath := flag.String("fixtures", "cmd/seed/fixtures.yaml", "path to the YAML fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	log := logger.New(cfg.Env)

	raw, err := os.ReadFile(*fixturePath)
	if err != nil {
		fatal("read fixtures", err)
	}
	var fx fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		fatal("parse fixtures", err)
	}
	if len(fx.Businesses) == 0 {
		fatal("parse fixtures", fmt.Errorf("no businesses in %s", *fixturePath))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		fatal("connect database", err)
	}
	defer pool.Close()

	users := authrepo.New(pool)
	businesses := businessrepo.New(pool)
	catalog := catalogrepo.New(pool)
	workforce := workforcerepo.New(pool)
	directory := discoveryrepo.New(pool)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for _, fixture := range fx.Businesses {
		group.Go(func() error {
			return seedBusiness(groupCtx, fixture, users, businesses, catalog, workforce, directory)
		})
	}
	if err := group.Wait(); err != nil {
		fatal("seed", err)
	}

	log.Info("seed complete", "businesses", len(fx.Businesses))
}

func seedBusiness(
	ctx context.Context,
	fixture businessFixture,
	users *authrepo.Repository,
	businesses *businessrepo.Repository,
	catalog catalogrepo.Repository,
	workforce *workforcerepo.Repo,
	directory discoveryrepo.Repository,
) error {
	hash, err := password.Hash(fixture.Owner.Password)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", fixture.Owner.Email, err)
	}

	owner, err := users.CreateUser(ctx, fixture.Owner.Email, hash, fixture.Owner.FullName, "owner", nil)
	if err != nil {
		return fmt.Errorf("create owner %s: %w", fixture.Owner.Email, err)
	}

	created, err := businesses.Create(ctx, businessrepo.Business{
		OwnerUserID: owner.ID,
		Name:        fixture.Name,
		About:       fixture.About,
		WebsiteLink: fixture.WebsiteLink,
		Phone:       fixture.Phone,
		Province:    fixture.Province,
		District:    fixture.District,
		Sector:      fixture.Sector,
		Cell:        fixture.Cell,
		Village:     fixture.Village,
		Latitude:    fixture.Latitude,
		Longitude:   fixture.Longitude,
	})
	if err != nil {
		return fmt.Errorf("create business %s: %w", fixture.Name, err)
	}

	if _, err := directory.Upsert(ctx, discoveryrepo.Listing{
		BusinessID:  created.ID,
		Name:        created.Name,
		About:       created.About,
		WebsiteLink: created.WebsiteLink,
		Phone:       created.Phone,
		Province:    created.Province,
		District:    created.District,
		Sector:      created.Sector,
		Cell:        created.Cell,
		Village:     created.Village,
		Latitude:    created.Latitude,
		Longitude:   created.Longitude,
	}); err != nil {
		return fmt.Errorf("seed listing for %s: %w", fixture.Name, err)
	}

	for _, product := range fixture.Products {
		var description *string
		if product.Description != "" {
			description = &product.Description
		}
		if _, err := catalog.CreateProduct(ctx, catalogrepo.CreateProductParams{
			BusinessID:    created.ID,
			Title:         product.Title,
			Category:      product.Category,
			Description:   description,
			PriceCents:    product.PriceCents,
			StockQuantity: product.StockQuantity,
		}); err != nil {
			return fmt.Errorf("seed product %s: %w", product.Title, err)
		}
	}

	for _, employee := range fixture.Employees {
		hiredAt, err := time.Parse("2006-01-02", employee.HiredAt)
		if err != nil {
			return fmt.Errorf("parse hiredAt for %s: %w", employee.FullName, err)
		}
		if _, err := workforce.CreateEmployee(ctx, workforcerepo.CreateEmployeeParams{
			BusinessID:  created.ID,
			FullName:    employee.FullName,
			RoleTitle:   employee.RoleTitle,
			SalaryCents: employee.SalaryCents,
			HiredAt:     hiredAt,
		}); err != nil {
			return fmt.Errorf("seed employee %s: %w", employee.FullName, err)
		}
	}

	if err := directory.RefreshCounts(ctx, created.ID); err != nil {
		return fmt.Errorf("refresh counts for %s: %w", fixture.Name, err)
	}
	return nil
}

func fatal(step string, err error) {
	fmt.Fprintf(os.Stderr, "seed: %s: %v\n", step, err)
	os.Exit(1)
}
