// Package listing turns stored image records into the display-ready,
// ranked shape the catalog API serves.
package listing
