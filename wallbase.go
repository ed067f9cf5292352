// Package wallbase provides a client that pulls wallpapers from the
// wallbase.cc gallery one image at a time. It searches the gallery,
// queues listing pages, resolves each listing into the source image URL
// and hands it to a saver.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package wallbase
