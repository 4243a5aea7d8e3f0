package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dhyabi2/luxury-module-creator-sub000/internal/domain"
	"github.com/dhyabi2/luxury-module-creator-sub000/internal/repository"
	"github.com/dhyabi2/luxury-module-creator-sub000/pkg/database"
	apperrors "github.com/dhyabi2/luxury-module-creator-sub000/pkg/errors"
)

// fieldExprs maps logical predicate field names onto SQL expressions. Case
// size is stored as free text ("41mm"), so its numeric projection strips
// everything but digits before casting.
var fieldExprs = map[string]string{
	"category":  "lower(category)",
	"brand":     "lower(brand)",
	"gender":    "lower(gender)",
	"band":      "lower(band)",
	"caseColor": "lower(case_color)",
	"color":     "lower(color)",
	"name":      "name",
	"stock":     "stock",
	"discount":  "discount",
	"price":     "price",
	"caseSize":  "NULLIF(regexp_replace(case_size, '[^0-9.]', '', 'g'), '')::numeric",
}

const productColumns = `id, name, brand, category, price, discount, currency, image_url,
		stock, rating, reviews, gender, case_size, specifications, created_at`

// CatalogRepository implements repository.CatalogStore using PostgreSQL.
type CatalogRepository struct {
	db database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(db database.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// buildWhere renders predicate groups into a WHERE clause with numbered
// placeholders. Values inside a group combine with OR, groups with AND.
func buildWhere(groups []repository.PredicateGroup) (string, []any, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	for _, g := range groups {
		var alts []string
		for _, field := range g.Fields {
			expr, ok := fieldExprs[field]
			if !ok {
				return "", nil, fmt.Errorf("unknown predicate field %q", field)
			}

			switch g.Op {
			case repository.OpEquals:
				for _, v := range g.Values {
					alts = append(alts, fmt.Sprintf("%s = $%d", expr, argIndex))
					args = append(args, v)
					argIndex++
				}
			case repository.OpContains:
				for _, v := range g.Values {
					alts = append(alts, fmt.Sprintf("%s ILIKE $%d", expr, argIndex))
					args = append(args, "%"+v+"%")
					argIndex++
				}
			case repository.OpMemberOf:
				alts = append(alts, fmt.Sprintf("%s = ANY($%d)", expr, argIndex))
				args = append(args, g.Values)
				argIndex++
			case repository.OpRange:
				alts = append(alts, fmt.Sprintf("(%s >= $%d AND %s <= $%d)", expr, argIndex, expr, argIndex+1))
				args = append(args, g.Min, g.Max)
				argIndex += 2
			case repository.OpGreaterThan:
				alts = append(alts, fmt.Sprintf("%s > $%d", expr, argIndex))
				args = append(args, g.Min)
				argIndex++
			default:
				return "", nil, fmt.Errorf("unknown predicate operator %q", g.Op)
			}
		}

		if len(alts) == 0 {
			continue
		}
		conditions = append(conditions, "("+strings.Join(alts, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// orderBy returns the server-side ordering for a sort key. Price sorts get a
// stable creation order here because the effective-price comparison runs in
// memory over the fetched page.
func orderBy(sort repository.Sort) string {
	switch sort.Key {
	case domain.SortNewest:
		return "ORDER BY created_at DESC, id"
	case domain.SortPriceLow, domain.SortPriceHigh:
		return "ORDER BY created_at DESC, id"
	default:
		return "ORDER BY id"
	}
}

// Count returns the number of products matching the predicate groups.
func (r *CatalogRepository) Count(ctx context.Context, groups []repository.PredicateGroup) (int, error) {
	where, args, err := buildWhere(groups)
	if err != nil {
		return 0, err
	}

	query := strings.TrimSpace(fmt.Sprintf(`SELECT count(*) FROM products %s`, where))

	ctx, end := database.TraceQuery(ctx, "CountProducts", query)
	var total int
	err = r.db.QueryRow(ctx, query, args...).Scan(&total)
	end(err)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return total, nil
}

// Fetch returns one page of matching products in store order.
func (r *CatalogRepository) Fetch(ctx context.Context, groups []repository.PredicateGroup, sort repository.Sort, limit, offset int) ([]domain.Product, error) {
	where, args, err := buildWhere(groups)
	if err != nil {
		return nil, err
	}

	argIndex := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy(sort), argIndex, argIndex+1,
	)
	args = append(args, limit, offset)

	ctx, end := database.TraceQuery(ctx, "FetchProducts", query)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	end(err)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	ctx, end := database.TraceQuery(ctx, "GetProduct", query)
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, apperrors.NotFound("product", id)
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// Ping reports store reachability.
func (r *CatalogRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p         domain.Product
		specsJSON []byte
	)

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Category,
		&p.Price,
		&p.Discount,
		&p.Currency,
		&p.ImageURL,
		&p.Stock,
		&p.Rating,
		&p.Reviews,
		&p.Gender,
		&p.CaseSize,
		&specsJSON,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("scan product row: %w", err)
	}

	if specsJSON != nil {
		if err := json.Unmarshal(specsJSON, &p.Specifications); err != nil {
			return domain.Product{}, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}

	return p, nil
}
