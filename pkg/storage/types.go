package storage

import "path"

type DiskStorage struct {
	Country    string
	RootFolder string
}

func NewDiskStorage(country, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Country:    country,
		RootFolder: rootFolder,
	}
}

// FileName is the path of name in the country folder.
func (ds *DiskStorage) FileName(name string) string {
	return path.Join(ds.RootFolder, ds.Country, name)
}
