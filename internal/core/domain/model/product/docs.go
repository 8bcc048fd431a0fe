// Package product implements the Product entity the cart and checkout flows read
// from. Catalog browsing and search are external collaborators; the core only
// needs the pricing, stock, and availability facts that gate cart mutations and
// price capture at checkout.
package product
