package newbill

import "strings"

// BadFormatMessage — сообщение под полем файла при недопустимом расширении.
const BadFormatMessage = "Merci de saisir un format valide, jpg, jpeg, png"

// AllowedExtensions — единый список для проверки и при загрузке, и при отправке формы.
var AllowedExtensions = []string{"jpg", "jpeg", "png"}

// FileExtension берёт последний сегмент пути (разделители / и \) и возвращает
// всё после последней точки. У имени без точки расширения нет ("").
func FileExtension(path string) string {
	name := baseName(path)
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// IsAllowedExtension — точное совпадение с учётом регистра: "JPG" не проходит.
func IsAllowedExtension(ext string) bool {
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// IsAllowedFile — FileExtension + IsAllowedExtension.
func IsAllowedFile(path string) bool {
	return IsAllowedExtension(FileExtension(path))
}
