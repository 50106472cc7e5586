package mascota

import "context"

// Gateway defines the remote shelter API operations used by the intake form.
type Gateway interface {
	UploadImage(ctx context.Context, img *Image) (string, error)
	Create(ctx context.Context, draft Draft) (*SaveResult, error)
	Update(ctx context.Context, id int64, draft Draft) (*SaveResult, error)
	List(ctx context.Context) ([]Mascota, error)
}
