package email

import (
	"fmt"

	"wardrobeiq/internal/models"
)

func (s *Service) generateWelcomeHTML(user *models.User) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to WardrobeIQ</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #4c3a8f;
            margin-bottom: 10px;
        }
        .welcome-message {
            font-size: 24px;
            color: #4c3a8f;
            margin-bottom: 20px;
        }
        .content {
            font-size: 16px;
            margin-bottom: 30px;
        }
        .footer {
            text-align: center;
            font-size: 14px;
            color: #888;
            margin-top: 30px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">WardrobeIQ</div>
        </div>
        <div class="welcome-message">Welcome aboard, %s!</div>
        <div class="content">
            <p>Your wardrobe just got smarter. Here is what you can do next:</p>
            <ul>
                <li>Upload photos of your clothes and let WardrobeIQ catalog them</li>
                <li>Get outfit suggestions matched to the weather and occasion</li>
                <li>Plan packing lists for your next trip</li>
            </ul>
            <p>Happy styling!</p>
        </div>
        <div class="footer">
            You received this email because an account was registered with this address.
        </div>
    </div>
</body>
</html>`, user.Name)
}

func (s *Service) generateWelcomeText(user *models.User) string {
	return fmt.Sprintf(`Welcome to WardrobeIQ, %s!

Your wardrobe just got smarter. Here is what you can do next:

- Upload photos of your clothes and let WardrobeIQ catalog them
- Get outfit suggestions matched to the weather and occasion
- Plan packing lists for your next trip

Happy styling!

You received this email because an account was registered with this address.
`, user.Name)
}
