package repository

import "context"

// ListSupplierNames returns the distinct supplier company names.
func (r *Repository) ListSupplierNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.selectRows(ctx, "list suppliers", &names, `SELECT DISTINCT CompanyName FROM Suppliers`); err != nil {
		return nil, err
	}
	return names, nil
}
